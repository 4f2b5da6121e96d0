// services/availability_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"studiobook-backend/metrics"
	"studiobook-backend/models"
	"studiobook-backend/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// slotStep is the fixed grid for candidate start times. Customers always see
// a predictable 30-minute grid regardless of service length; slots of
// different services never need to align buffer-to-buffer. If a duration is
// not a multiple of 30 the last slot before closing may leave unused time,
// and no attempt is made to pack tighter.
const slotStep = 30 * time.Minute

// Slot is an ephemeral bookable window. Never persisted; generated fresh per
// request.
type Slot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type AvailabilityService struct {
	db    *gorm.DB
	cache *SlotCache

	// Now is swappable for tests.
	Now func() time.Time
}

func NewAvailabilityService(db *gorm.DB, cache *SlotCache) *AvailabilityService {
	return &AvailabilityService{
		db:    db,
		cache: cache,
		Now:   time.Now,
	}
}

// ComputeForService resolves duration from the active employee-service
// assignment and buffer from the employee, then computes available slots.
// This is the path the booking page uses.
func (s *AvailabilityService) ComputeForService(ctx context.Context, employeeID, serviceID uuid.UUID, date time.Time) ([]Slot, error) {
	var es models.EmployeeService
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND service_id = ? AND is_active = ?", employeeID, serviceID, true).
		First(&es).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrServiceNotOffered
	}
	if err != nil {
		return nil, err
	}

	return s.ComputeAvailableSlots(ctx, employeeID, date, es.Duration, -1)
}

// ComputeAvailableSlots returns the ordered bookable windows for an employee
// on a date, for a service of the given duration (minutes). bufferMinutes < 0
// means "use the employee's own buffer"; callers that already know the buffer
// may pass it explicitly.
//
// The result is best-effort: it can be stale by the time a booking is
// attempted, which is why CreateBooking re-validates at commit time.
func (s *AvailabilityService) ComputeAvailableSlots(ctx context.Context, employeeID uuid.UUID, date time.Time, duration, bufferMinutes int) ([]Slot, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrValidation)
	}

	var employee models.Employee
	err := s.db.WithContext(ctx).First(&employee, "id = ?", employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: employee %s", ErrNotFound, employeeID)
	}
	if err != nil {
		return nil, err
	}

	if bufferMinutes < 0 {
		bufferMinutes = employee.BufferTime
	}

	if cached, ok := s.cache.Get(ctx, employeeID, date, duration, bufferMinutes); ok {
		metrics.IncSlotsServed("cache")
		return cached, nil
	}

	dayHours := employee.WorkingHours.ForDate(date)
	if len(dayHours) == 0 {
		return []Slot{}, nil
	}

	dayStart := utils.BeginningOfDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var bookings []models.Booking
	if err := s.db.WithContext(ctx).
		Where("employee_id = ? AND status NOT IN ?", employeeID, models.InactiveBookingStatuses).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	var timeOff []models.EmployeeTimeOff
	if err := s.db.WithContext(ctx).
		Where("employee_id = ? AND start_time < ? AND end_time > ?", employeeID, dayEnd, dayStart).
		Find(&timeOff).Error; err != nil {
		return nil, err
	}

	now := s.Now()
	serviceLen := time.Duration(duration) * time.Minute

	slots := []Slot{}
	for _, window := range dayHours {
		windowStart, err := utils.TimeOnDate(date, window.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		windowEnd, err := utils.TimeOnDate(date, window.End)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}

		for current := windowStart; !current.Add(serviceLen).After(windowEnd); current = current.Add(slotStep) {
			slotEnd := current.Add(serviceLen)

			// No past or currently-starting slots.
			if !current.After(now) {
				continue
			}
			if hasBookingConflict(current, slotEnd, bookings, bufferMinutes) {
				continue
			}
			if hasTimeOffConflict(current, slotEnd, timeOff) {
				continue
			}

			slots = append(slots, Slot{StartTime: current, EndTime: slotEnd})
		}
	}

	s.cache.Set(ctx, employeeID, date, duration, bufferMinutes, slots)
	metrics.IncSlotsServed("computed")

	log.Debug().
		Str("employee_id", employeeID.String()).
		Str("date", date.Format("2006-01-02")).
		Int("duration", duration).
		Int("slots", len(slots)).
		Msg("computed available slots")

	return slots, nil
}

// hasBookingConflict checks a candidate window against existing bookings with
// the employee's trailing buffer applied after each booking. The buffer is
// deliberately asymmetric: it extends only after an existing booking, never
// before it.
func hasBookingConflict(start, end time.Time, bookings []models.Booking, bufferMinutes int) bool {
	pad := time.Duration(bufferMinutes) * time.Minute
	for _, b := range bookings {
		if utils.Overlaps(start, end, b.StartTime, b.EndTime.Add(pad)) {
			return true
		}
	}
	return false
}

func hasTimeOffConflict(start, end time.Time, timeOff []models.EmployeeTimeOff) bool {
	for _, t := range timeOff {
		if utils.Overlaps(start, end, t.StartTime, t.EndTime) {
			return true
		}
	}
	return false
}
