package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"studiobook-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type apiFixture struct {
	studio   models.Studio
	employee models.Employee
	service  models.Service
}

// newTestAPI wires the handlers against a per-test in-memory database, with
// seed data for one studio, one all-week employee, and one 60-minute service.
func newTestAPI(t *testing.T) (*gin.Engine, apiFixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Studio{},
		&models.Employee{},
		&models.EmployeeTimeOff{},
		&models.Service{},
		&models.EmployeeService{},
		&models.Booking{},
	))

	var f apiFixture
	f.studio = models.Studio{Name: "Glow Studio", Subdomain: "glow-" + strings.ToLower(strings.ReplaceAll(t.Name(), "/", "-"))}
	require.NoError(t, db.Create(&f.studio).Error)

	allWeek := models.WorkingHours{}
	for day := range map[string]bool{
		"sunday": true, "monday": true, "tuesday": true, "wednesday": true,
		"thursday": true, "friday": true, "saturday": true,
	} {
		allWeek[day] = []models.TimeRange{{Start: "09:00", End: "17:00"}}
	}
	f.employee = models.Employee{
		StudioID:     f.studio.ID,
		Name:         "Maya",
		WorkingHours: allWeek,
		BufferTime:   0,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&f.employee).Error)

	f.service = models.Service{StudioID: f.studio.ID, Name: "Gel Manicure", IsActive: true}
	require.NoError(t, db.Create(&f.service).Error)

	assignment := models.EmployeeService{
		EmployeeID: f.employee.ID,
		ServiceID:  f.service.ID,
		Price:      50,
		Duration:   60,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&assignment).Error)

	Init(db, nil, false)

	r := gin.New()
	r.GET("/api/employees/:id/slots", GetAvailableSlots)
	r.POST("/api/bookings", CreateBooking)
	r.PATCH("/api/bookings/:id/status", UpdateBookingStatus)
	r.GET("/api/bookings/:id", GetBooking)
	return r, f
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetAvailableSlotsEndpoint(t *testing.T) {
	r, f := newTestAPI(t)

	date := time.Now().AddDate(0, 0, 7)
	path := fmt.Sprintf("/api/employees/%s/slots?serviceId=%s&date=%s",
		f.employee.ID, f.service.ID, date.Format("2006-01-02"))

	w := doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Date  string `json:"date"`
		Slots []struct {
			StartTime time.Time `json:"startTime"`
			EndTime   time.Time `json:"endTime"`
		} `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, date.Format("2006-01-02"), resp.Date)
	// 09:00-17:00 with a 60-minute service: 09:00 through 16:00 starts.
	assert.Len(t, resp.Slots, 15)

	t.Run("bad date", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet,
			fmt.Sprintf("/api/employees/%s/slots?serviceId=%s&date=tomorrow", f.employee.ID, f.service.ID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("beyond horizon", func(t *testing.T) {
		far := time.Now().AddDate(1, 0, 0)
		w := doJSON(t, r, http.MethodGet,
			fmt.Sprintf("/api/employees/%s/slots?serviceId=%s&date=%s", f.employee.ID, f.service.ID, far.Format("2006-01-02")), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown service", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet,
			fmt.Sprintf("/api/employees/%s/slots?serviceId=%s&date=%s", f.employee.ID, f.employee.ID, date.Format("2006-01-02")), nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestBookingEndpoints(t *testing.T) {
	r, f := newTestAPI(t)

	day := time.Now().AddDate(0, 0, 7)
	start := time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, time.Local)

	body := gin.H{
		"studioId":      f.studio.ID.String(),
		"serviceId":     f.service.ID.String(),
		"employeeId":    f.employee.ID.String(),
		"startTime":     start.Format(time.RFC3339),
		"customerName":  "Ana",
		"customerPhone": "+15550100",
	}

	w := doJSON(t, r, http.MethodPost, "/api/bookings", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, models.BookingPending, created.Status)
	assert.Equal(t, 50.0, created.Price)

	// Same window again conflicts.
	w = doJSON(t, r, http.MethodPost, "/api/bookings", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Missing required field fails binding.
	bad := gin.H{"studioId": f.studio.ID.String()}
	w = doJSON(t, r, http.MethodPost, "/api/bookings", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Confirm, then an illegal transition.
	w = doJSON(t, r, http.MethodPatch, "/api/bookings/"+created.ID.String()+"/status", gin.H{"status": "CONFIRMED"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPatch, "/api/bookings/"+created.ID.String()+"/status", gin.H{"status": "DECLINED"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/bookings/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, models.BookingConfirmed, fetched.Status)
}
