package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeRange is one working interval within a day, times as "HH:MM" (24h).
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WorkingHours maps lowercase weekday names ("monday".."sunday") to the
// ordered working intervals active on that day. An absent or empty day means
// the employee does not work that day.
type WorkingHours map[string][]TimeRange

// Custom JSONB type for working hours
func (wh WorkingHours) Value() (driver.Value, error) {
	return json.Marshal(wh)
}

func (wh *WorkingHours) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, wh)
	case string:
		return json.Unmarshal([]byte(v), wh)
	default:
		return errors.New("unsupported type for WorkingHours")
	}
}

// ForDate returns the working intervals active on the given date's weekday.
func (wh WorkingHours) ForDate(date time.Time) []TimeRange {
	return wh[strings.ToLower(date.Weekday().String())]
}

var weekdayNames = map[string]bool{
	"sunday": true, "monday": true, "tuesday": true, "wednesday": true,
	"thursday": true, "friday": true, "saturday": true,
}

// Validate checks weekday keys, HH:MM format, start < end, and that the
// intervals within one day do not overlap each other.
func (wh WorkingHours) Validate() error {
	for day, ranges := range wh {
		if !weekdayNames[day] {
			return fmt.Errorf("unknown weekday %q", day)
		}
		type span struct{ start, end int }
		spans := make([]span, 0, len(ranges))
		for _, r := range ranges {
			start, err := minuteOfDay(r.Start)
			if err != nil {
				return fmt.Errorf("%s: %w", day, err)
			}
			end, err := minuteOfDay(r.End)
			if err != nil {
				return fmt.Errorf("%s: %w", day, err)
			}
			if start >= end {
				return fmt.Errorf("%s: interval %s-%s must have start before end", day, r.Start, r.End)
			}
			for _, s := range spans {
				if start < s.end && s.start < end {
					return fmt.Errorf("%s: interval %s-%s overlaps another interval", day, r.Start, r.End)
				}
			}
			spans = append(spans, span{start, end})
		}
	}
	return nil
}

func minuteOfDay(hhmm string) (int, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("time %q is not in HH:MM format", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("time %q is not in HH:MM format", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("time %q is not in HH:MM format", hhmm)
	}
	return h*60 + m, nil
}

// DefaultWorkingHours is the template applied to new employees: weekdays
// 09:00-17:00, weekend off.
func DefaultWorkingHours() WorkingHours {
	wh := WorkingHours{
		"saturday": {},
		"sunday":   {},
	}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		wh[day] = []TimeRange{{Start: "09:00", End: "17:00"}}
	}
	return wh
}

type Employee struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudioID uuid.UUID `gorm:"type:uuid;index;not null" json:"studioId"`

	Name     string `gorm:"not null" json:"name"`
	Title    string `json:"title"`
	Bio      string `json:"bio,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`

	WorkingHours WorkingHours `gorm:"type:jsonb;default:'{}'" json:"workingHours"`

	// Minutes of mandatory gap after each of this employee's bookings, 0-60.
	BufferTime int `gorm:"default:15" json:"bufferTime"`

	IsActive bool `gorm:"default:true" json:"isActive"`

	Services []EmployeeService `gorm:"foreignKey:EmployeeID" json:"-"`
	Bookings []Booking         `gorm:"foreignKey:EmployeeID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.WorkingHours == nil {
		e.WorkingHours = DefaultWorkingHours()
	}
	return
}

// EmployeeTimeOff is a blackout interval (holiday, appointment, sick day)
// during which no slots are offered regardless of the weekly template.
type EmployeeTimeOff struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;index;not null" json:"employeeId"`

	StartTime time.Time `gorm:"not null;index" json:"startTime"`
	EndTime   time.Time `gorm:"not null" json:"endTime"`
	Reason    string    `json:"reason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *EmployeeTimeOff) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
