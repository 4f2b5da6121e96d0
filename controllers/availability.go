// controllers/availability.go
package controllers

import (
	"net/http"
	"time"

	"studiobook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// bookingHorizonDays caps how far ahead availability may be queried.
const bookingHorizonDays = 90

// GetAvailableSlots returns the bookable windows for an employee on a date
// for a given service. Duration and buffer come from the employee-service
// assignment and the employee record; clients never supply them.
func GetAvailableSlots(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	serviceID, err := uuid.Parse(c.Query("serviceId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid or missing serviceId")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.Local)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid or missing date, expected YYYY-MM-DD")
		return
	}
	if utils.DaysBetween(time.Now(), date) > bookingHorizonDays {
		utils.RespondWithError(c, http.StatusBadRequest, "Date is beyond the booking horizon")
		return
	}

	slots, err := availability.ComputeForService(c.Request.Context(), employeeID, serviceID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date.Format("2006-01-02"),
		"slots": slots,
	})
}
