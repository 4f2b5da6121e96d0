package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingDeclined  BookingStatus = "DECLINED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingNoShow    BookingStatus = "NO_SHOW"
)

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingDeclined,
		BookingCompleted, BookingCancelled, BookingNoShow:
		return true
	}
	return false
}

// Terminal statuses admit no further transitions.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingDeclined, BookingCompleted, BookingCancelled, BookingNoShow:
		return true
	}
	return false
}

// statusTransitions is the admin/system state machine. Creation lands in
// PENDING; everything after that goes through here.
var statusTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingDeclined, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingNoShow, BookingCancelled},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// InactiveBookingStatuses free their time window immediately; bookings in any
// other status block it.
var InactiveBookingStatuses = []BookingStatus{BookingCancelled, BookingDeclined}

// BlocksSlot reports whether a booking in this status occupies its window for
// conflict checks.
func (s BookingStatus) BlocksSlot() bool {
	return s != BookingCancelled && s != BookingDeclined
}

type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudioID   uuid.UUID `gorm:"type:uuid;index;not null" json:"studioId"`
	ServiceID  uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`
	EmployeeID uuid.UUID `gorm:"type:uuid;index;not null" json:"employeeId"`

	StartTime time.Time `gorm:"not null;index" json:"startTime"`
	EndTime   time.Time `gorm:"not null" json:"endTime"`

	Status BookingStatus `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`

	CustomerName  string `gorm:"not null" json:"customerName"`
	CustomerPhone string `gorm:"not null" json:"customerPhone"`
	CustomerEmail string `json:"customerEmail,omitempty"`

	Notes        string `json:"notes,omitempty"`
	PrivateNotes string `json:"privateNotes,omitempty"`

	// Snapshotted from the employee-service assignment at creation time;
	// later price changes never touch existing bookings.
	Price float64 `gorm:"type:decimal(10,2);not null" json:"price"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
