// controllers/booking.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"studiobook-backend/models"
	"studiobook-backend/services"
	"studiobook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateBookingInput defines the expected JSON structure for creating a booking
type CreateBookingInput struct {
	StudioID   string    `json:"studioId" binding:"required"`
	ServiceID  string    `json:"serviceId" binding:"required"`
	EmployeeID string    `json:"employeeId" binding:"required"`
	StartTime  time.Time `json:"startTime" binding:"required"`

	CustomerName  string `json:"customerName" binding:"required"`
	CustomerPhone string `json:"customerPhone" binding:"required"`
	CustomerEmail string `json:"customerEmail"`
	Notes         string `json:"notes"`
}

// UpdateBookingStatusInput defines the expected JSON structure for a status change
type UpdateBookingStatusInput struct {
	Status       string  `json:"status" binding:"required"`
	PrivateNotes *string `json:"privateNotes"`
}

// CreateBooking is the customer-facing write endpoint. The slot list the
// customer saw may be stale; the allocator re-validates before insert.
func CreateBooking(c *gin.Context) {
	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	studioID, err := uuid.Parse(input.StudioID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid studio ID format")
		return
	}
	serviceID, err := uuid.Parse(input.ServiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}
	employeeID, err := uuid.Parse(input.EmployeeID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	booking, err := bookings.CreateBooking(c.Request.Context(), services.CreateBookingInput{
		StudioID:      studioID,
		ServiceID:     serviceID,
		EmployeeID:    employeeID,
		StartTime:     input.StartTime,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		CustomerEmail: input.CustomerEmail,
		Notes:         input.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// UpdateBookingStatus applies an admin/system status transition.
func UpdateBookingStatus(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input UpdateBookingStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := bookings.UpdateBookingStatus(c.Request.Context(), bookingID, services.UpdateBookingStatusInput{
		Status:       models.BookingStatus(input.Status),
		PrivateNotes: input.PrivateNotes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// GetBooking retrieves a specific booking by ID
func GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	booking, err := bookings.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// GetBookings lists a studio's bookings with optional status/date filters.
func GetBookings(c *gin.Context) {
	studioID, err := uuid.Parse(c.Query("studioId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid or missing studioId")
		return
	}

	opts := services.ListBookingsOptions{}

	for _, s := range c.QueryArray("status") {
		status := models.BookingStatus(s)
		if !status.Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown status: "+s)
			return
		}
		opts.Status = append(opts.Status, status)
	}

	if v := c.Query("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid from timestamp")
			return
		}
		opts.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid to timestamp")
			return
		}
		opts.To = &to
	}

	if v := c.Query("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			opts.Limit = limit
		}
	}
	if v := c.Query("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil {
			opts.Offset = offset
		}
	}

	list, total, err := bookings.ListBookings(c.Request.Context(), studioID, opts)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": list,
		"total":    total,
	})
}
