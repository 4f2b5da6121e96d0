// services/booking_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"studiobook-backend/metrics"
	"studiobook-backend/models"
	"studiobook-backend/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CreateBookingInput is the customer-facing create request.
type CreateBookingInput struct {
	StudioID   uuid.UUID
	ServiceID  uuid.UUID
	EmployeeID uuid.UUID
	StartTime  time.Time

	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Notes         string
}

// UpdateBookingStatusInput carries a status transition. Optional fields use
// pointers so the storage layer only touches what the caller set.
type UpdateBookingStatusInput struct {
	Status       models.BookingStatus
	PrivateNotes *string
}

// ListBookingsOptions filters the studio booking list.
type ListBookingsOptions struct {
	Status []models.BookingStatus
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// BookingService is the transactional boundary around the booking store. Its
// create path is the sole correctness guarantee against double-booking:
// whatever slot list the client saw, the overlap check is re-run against
// current state inside the critical section before insert.
type BookingService struct {
	db    *gorm.DB
	cache *SlotCache

	// LaxTransitions reproduces the legacy behavior of accepting any status
	// change. Kept for compatibility testing only; the transition table is
	// enforced by default.
	LaxTransitions bool

	// Now is swappable for tests.
	Now func() time.Time

	mu            sync.Mutex
	employeeLocks map[uuid.UUID]*sync.Mutex
}

func NewBookingService(db *gorm.DB, cache *SlotCache) *BookingService {
	return &BookingService{
		db:            db,
		cache:         cache,
		Now:           time.Now,
		employeeLocks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// employeeLock serializes booking creation per employee within this process.
// Multi-process deployments additionally rely on the Postgres exclusion
// constraint installed by config.EnsureBookingConstraints.
func (s *BookingService) employeeLock(employeeID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.employeeLocks[employeeID]
	if !ok {
		lock = &sync.Mutex{}
		s.employeeLocks[employeeID] = lock
	}
	return lock
}

// CreateBooking validates the request, snapshots price and duration from the
// employee-service assignment, and commits the booking in PENDING unless the
// window was taken in the meantime.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	if input.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	if input.CustomerPhone == "" {
		return nil, fmt.Errorf("%w: customer phone is required", ErrValidation)
	}
	if !utils.ValidatePhone(input.CustomerPhone) {
		return nil, fmt.Errorf("%w: customer phone is not a valid phone number", ErrValidation)
	}
	if input.StartTime.IsZero() {
		return nil, fmt.Errorf("%w: start time is required", ErrValidation)
	}
	if !input.StartTime.After(s.Now()) {
		return nil, fmt.Errorf("%w: start time must be in the future", ErrValidation)
	}

	var studio models.Studio
	err := s.db.WithContext(ctx).Select("id").First(&studio, "id = ?", input.StudioID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: studio %s", ErrNotFound, input.StudioID)
	}
	if err != nil {
		return nil, err
	}

	var employee models.Employee
	err = s.db.WithContext(ctx).First(&employee, "id = ?", input.EmployeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: employee %s", ErrNotFound, input.EmployeeID)
	}
	if err != nil {
		return nil, err
	}

	var assignment models.EmployeeService
	err = s.db.WithContext(ctx).
		Where("employee_id = ? AND service_id = ? AND is_active = ?", input.EmployeeID, input.ServiceID, true).
		First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrServiceNotOffered
	}
	if err != nil {
		return nil, err
	}

	endTime := input.StartTime.Add(time.Duration(assignment.Duration) * time.Minute)

	booking := &models.Booking{
		StudioID:      input.StudioID,
		ServiceID:     input.ServiceID,
		EmployeeID:    input.EmployeeID,
		StartTime:     input.StartTime,
		EndTime:       endTime,
		Status:        models.BookingPending,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		CustomerEmail: input.CustomerEmail,
		Notes:         input.Notes,
		Price:         assignment.Price,
	}

	lock := s.employeeLock(input.EmployeeID)
	lock.Lock()
	defer lock.Unlock()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-check against current state, not the possibly-stale slot list
		// the client saw. Fetch anything that could collide once the
		// trailing buffer after an existing booking is applied.
		pad := time.Duration(employee.BufferTime) * time.Minute
		var existing []models.Booking
		if err := tx.
			Where("employee_id = ? AND status NOT IN ?", input.EmployeeID, models.InactiveBookingStatuses).
			Where("start_time < ? AND end_time > ?", endTime, input.StartTime.Add(-pad)).
			Find(&existing).Error; err != nil {
			return err
		}
		if hasBookingConflict(input.StartTime, endTime, existing, employee.BufferTime) {
			return ErrSlotNoLongerAvailable
		}

		// Time off blocks the window just like it blocks slot generation.
		var timeOff []models.EmployeeTimeOff
		if err := tx.
			Where("employee_id = ? AND start_time < ? AND end_time > ?", input.EmployeeID, endTime, input.StartTime).
			Find(&timeOff).Error; err != nil {
			return err
		}
		if hasTimeOffConflict(input.StartTime, endTime, timeOff) {
			return ErrSlotNoLongerAvailable
		}

		return tx.Create(booking).Error
	})
	if err != nil {
		if errors.Is(err, ErrSlotNoLongerAvailable) {
			metrics.IncSlotConflict()
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, input.EmployeeID)
	metrics.IncBookingCreated(string(booking.Status))

	log.Info().
		Str("booking_id", booking.ID.String()).
		Str("employee_id", booking.EmployeeID.String()).
		Time("start", booking.StartTime).
		Msg("booking created")

	return booking, nil
}

// UpdateBookingStatus applies a status transition and the optional private
// note. Cancellation and decline only ever free time, so no conflict
// re-check is needed on any transition path.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, id uuid.UUID, input UpdateBookingStatusInput) (*models.Booking, error) {
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, input.Status)
	}

	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking %s", ErrNotFound, id)
			}
			return err
		}

		if !s.LaxTransitions && !models.CanTransition(booking.Status, input.Status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, input.Status)
		}

		updates := map[string]interface{}{"status": input.Status}
		if input.PrivateNotes != nil {
			updates["private_notes"] = *input.PrivateNotes
		}
		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return err
		}
		booking.Status = input.Status
		if input.PrivateNotes != nil {
			booking.PrivateNotes = *input.PrivateNotes
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// A freed window changes availability.
	if !input.Status.BlocksSlot() {
		s.cache.Invalidate(ctx, booking.EmployeeID)
	}
	metrics.IncStatusChange(string(input.Status))

	return &booking, nil
}

// GetBooking fetches one booking by id.
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListBookings returns a studio's bookings with optional status and date
// filters, newest-day-first paging left to the caller via Limit/Offset.
func (s *BookingService) ListBookings(ctx context.Context, studioID uuid.UUID, opts ListBookingsOptions) ([]models.Booking, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Booking{}).Where("studio_id = ?", studioID)

	if len(opts.Status) > 0 {
		q = q.Where("status IN ?", opts.Status)
	}
	if opts.From != nil {
		q = q.Where("start_time >= ?", *opts.From)
	}
	if opts.To != nil {
		q = q.Where("start_time <= ?", *opts.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	var bookings []models.Booking
	if err := q.Order("start_time ASC").Limit(limit).Offset(opts.Offset).Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// ListActiveBookings returns the employee's bookings that block time in the
// given range, i.e. everything except cancelled and declined.
func (s *BookingService) ListActiveBookings(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND status NOT IN ?", employeeID, models.InactiveBookingStatuses).
		Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
