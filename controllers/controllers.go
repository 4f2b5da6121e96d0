// controllers/controllers.go
package controllers

import (
	"errors"
	"net/http"

	"studiobook-backend/services"
	"studiobook-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	availability *services.AvailabilityService
	bookings     *services.BookingService
)

// Init wires the booking core into the handler package. Simple CRUD handlers
// talk to config.DB directly; everything touching availability or booking
// state goes through the services.
func Init(db *gorm.DB, cache *services.SlotCache, laxTransitions bool) {
	availability = services.NewAvailabilityService(db, cache)
	bookings = services.NewBookingService(db, cache)
	bookings.LaxTransitions = laxTransitions
}

// respondServiceError maps core error kinds onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrServiceNotOffered):
		utils.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrSlotNoLongerAvailable):
		// Expected under concurrent load; the client should re-fetch slots.
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
