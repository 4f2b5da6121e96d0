// services/completion_service.go
package services

import (
	"context"

	"studiobook-backend/models"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CompletionService periodically moves CONFIRMED bookings whose end time has
// passed to COMPLETED. Studios that prefer to mark no-shows by hand can leave
// bookings alone before the sweep runs; the sweep only applies a transition
// the state machine already allows.
type CompletionService struct {
	db       *gorm.DB
	bookings *BookingService
}

func NewCompletionService(db *gorm.DB, bookings *BookingService) *CompletionService {
	return &CompletionService{db: db, bookings: bookings}
}

func (s *CompletionService) StartScheduler() {
	c := cron.New()

	// Run every 30 minutes
	c.AddFunc("*/30 * * * *", func() {
		s.CompleteElapsed(context.Background())
	})

	c.Start()
	log.Info().Msg("completion scheduler started")
}

// CompleteElapsed finds confirmed bookings that already ended and completes
// them through the normal status-update path.
func (s *CompletionService) CompleteElapsed(ctx context.Context) {
	cutoff := s.bookings.Now()

	var elapsed []models.Booking
	if err := s.db.WithContext(ctx).
		Where("status = ? AND end_time < ?", models.BookingConfirmed, cutoff).
		Find(&elapsed).Error; err != nil {
		log.Error().Err(err).Msg("failed to fetch elapsed bookings")
		return
	}

	completed := 0
	for _, booking := range elapsed {
		if _, err := s.bookings.UpdateBookingStatus(ctx, booking.ID, UpdateBookingStatusInput{
			Status: models.BookingCompleted,
		}); err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID.String()).Msg("failed to complete booking")
			continue
		}
		completed++
	}

	if completed > 0 {
		log.Info().Int("completed", completed).Time("cutoff", cutoff).Msg("completed elapsed bookings")
	}
}
