package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudioID    uuid.UUID `gorm:"type:uuid;index;not null" json:"studioId"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `gorm:"default:'General'" json:"category"`
	ImageURL    string    `json:"imageUrl,omitempty"`

	DisplayOrder int  `gorm:"default:0" json:"displayOrder"`
	IsActive     bool `gorm:"default:true" json:"isActive"`

	Employees []EmployeeService `gorm:"foreignKey:ServiceID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// EmployeeService fixes the price and duration of one service when performed
// by one employee. It is the authoritative source for slot generation and for
// the price snapshotted onto a booking at creation time.
type EmployeeService struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_employee_service,priority:1" json:"employeeId"`
	ServiceID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_employee_service,priority:2" json:"serviceId"`

	Price    float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Duration int     `gorm:"not null" json:"duration"` // in minutes
	IsActive bool    `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (es *EmployeeService) BeforeCreate(tx *gorm.DB) (err error) {
	if es.ID == uuid.Nil {
		es.ID = uuid.New()
	}
	return
}
