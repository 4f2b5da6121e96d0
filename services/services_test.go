// services/services_test.go
package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"studiobook-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Single connection keeps the shared in-memory database alive and
	// avoids SQLite write lock errors under concurrent test load.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Studio{},
		&models.Employee{},
		&models.EmployeeTimeOff{},
		&models.Service{},
		&models.EmployeeService{},
		&models.Booking{},
	))

	return db
}

type fixture struct {
	studio     models.Studio
	employee   models.Employee
	service    models.Service
	assignment models.EmployeeService
}

// seedFixture creates one studio with one employee working 09:00-17:00 every
// day and one 60-minute service priced 50.
func seedFixture(t *testing.T, db *gorm.DB, bufferMinutes int) fixture {
	t.Helper()

	allDays := models.WorkingHours{}
	for _, day := range []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"} {
		allDays[day] = []models.TimeRange{{Start: "09:00", End: "17:00"}}
	}

	f := fixture{
		studio: models.Studio{
			Subdomain: "glow-" + uuid.NewString()[:8],
			Name:      "Glow Studio",
			Slug:      "glow",
		},
	}
	require.NoError(t, db.Create(&f.studio).Error)

	f.employee = models.Employee{
		StudioID:     f.studio.ID,
		Name:         "Maya",
		Title:        "Nail Artist",
		WorkingHours: allDays,
		BufferTime:   bufferMinutes,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&f.employee).Error)

	f.service = models.Service{
		StudioID: f.studio.ID,
		Name:     "Gel Manicure",
		Category: "Nails",
		IsActive: true,
	}
	require.NoError(t, db.Create(&f.service).Error)

	f.assignment = models.EmployeeService{
		EmployeeID: f.employee.ID,
		ServiceID:  f.service.ID,
		Price:      50,
		Duration:   60,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&f.assignment).Error)

	return f
}

// testDay is a fixed future date so slot expectations stay deterministic.
var testDay = time.Date(2030, time.June, 10, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2030, time.June, 10, hour, min, 0, 0, time.UTC)
}
