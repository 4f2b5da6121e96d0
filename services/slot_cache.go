// services/slot_cache.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SlotCache keeps recently computed availability in Redis with a short TTL.
// Staleness is tolerable because the allocator re-validates at commit time;
// the cache only saves the read path DB work. A nil *SlotCache is a no-op,
// so deployments without Redis just compute every time.
type SlotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSlotCache(rdb *redis.Client, ttl time.Duration) *SlotCache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SlotCache{rdb: rdb, ttl: ttl}
}

func slotCacheKey(employeeID uuid.UUID, date time.Time, duration, buffer int) string {
	return fmt.Sprintf("slots:%s:%s:%d:%d", employeeID, date.Format("2006-01-02"), duration, buffer)
}

func (c *SlotCache) Get(ctx context.Context, employeeID uuid.UUID, date time.Time, duration, buffer int) ([]Slot, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, slotCacheKey(employeeID, date, duration, buffer)).Bytes()
	if err != nil {
		return nil, false
	}
	var slots []Slot
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(ctx context.Context, employeeID uuid.UUID, date time.Time, duration, buffer int, slots []Slot) {
	if c == nil {
		return
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, slotCacheKey(employeeID, date, duration, buffer), data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("slot cache set failed")
	}
}

// Invalidate drops every cached day for an employee. Called whenever a
// booking is created or a booking frees its window.
func (c *SlotCache) Invalidate(ctx context.Context, employeeID uuid.UUID) {
	if c == nil {
		return
	}
	pattern := fmt.Sprintf("slots:%s:*", employeeID)
	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Warn().Err(err).Msg("slot cache invalidate failed")
		}
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("slot cache scan failed")
	}
}
