package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Studio plans. Plan enforcement (employee caps, billing) happens outside
// this service; the column is kept so the admin surface can display it.
const (
	PlanTrial        = "TRIAL"
	PlanStarter      = "STARTER"
	PlanProfessional = "PROFESSIONAL"
	PlanEnterprise   = "ENTERPRISE"
)

type Studio struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Subdomain    string    `gorm:"uniqueIndex;not null" json:"subdomain"`
	CustomDomain string    `json:"customDomain,omitempty"`
	Name         string    `gorm:"not null" json:"name"`
	Slug         string    `gorm:"not null" json:"slug"`
	LogoURL      string    `json:"logoUrl,omitempty"`

	// Landing-page theme blob; rendered elsewhere, opaque here.
	Theme datatypes.JSON `gorm:"type:jsonb" json:"theme,omitempty"`

	Plan         string `gorm:"type:varchar(20);default:'TRIAL'" json:"plan"`
	MaxEmployees int    `gorm:"default:2" json:"maxEmployees"`

	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`

	Employees []Employee `gorm:"foreignKey:StudioID" json:"-"`
	Services  []Service  `gorm:"foreignKey:StudioID" json:"-"`
	Bookings  []Booking  `gorm:"foreignKey:StudioID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Initialize UUID before creating
func (s *Studio) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
