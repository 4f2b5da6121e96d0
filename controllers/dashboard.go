package controllers

import (
	"net/http"
	"time"

	"studiobook-backend/config"
	"studiobook-backend/models"
	"studiobook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DashboardOverview struct {
	TotalBookings    int64            `json:"totalBookings"`
	PendingBookings  int64            `json:"pendingBookings"`
	TodaysBookings   []models.Booking `json:"todaysBookings"`
	UpcomingBookings []models.Booking `json:"upcomingBookings"`
}

// GetDashboardOverview summarizes a studio's booking activity for the admin
// start page: totals, today's schedule, and the next upcoming bookings.
func GetDashboardOverview(c *gin.Context) {
	studioID, err := uuid.Parse(c.Param("studioId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid studio ID format")
		return
	}

	var overview DashboardOverview

	config.DB.Model(&models.Booking{}).
		Where("studio_id = ?", studioID).
		Count(&overview.TotalBookings)

	config.DB.Model(&models.Booking{}).
		Where("studio_id = ? AND status = ?", studioID, models.BookingPending).
		Count(&overview.PendingBookings)

	now := time.Now()
	dayStart := utils.BeginningOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	activeToday := []models.BookingStatus{models.BookingPending, models.BookingConfirmed}

	config.DB.
		Where("studio_id = ? AND status IN ?", studioID, activeToday).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Order("start_time ASC").
		Find(&overview.TodaysBookings)

	config.DB.
		Where("studio_id = ? AND status IN ?", studioID, activeToday).
		Where("start_time >= ?", now).
		Order("start_time ASC").
		Limit(10).
		Find(&overview.UpcomingBookings)

	c.JSON(http.StatusOK, overview)
}
