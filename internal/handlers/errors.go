package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/superiortours/booking-backend/internal/models"
)

// respondError translates the booking error taxonomy into transport
// responses. Unrecognized errors are store failures and come back as a
// generic 500 so the caller may retry the whole operation.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrPatronNotFound),
		errors.Is(err, models.ErrTripNotFound),
		errors.Is(err, models.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrSeatBooked),
		errors.Is(err, models.ErrPatronAlreadyBooked),
		errors.Is(err, models.ErrDuplicatePhone):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrSeatOutOfRange),
		errors.Is(err, models.ErrCapacityBelowBookings),
		errors.Is(err, models.ErrTripHasBookings),
		errors.Is(err, models.ErrInvalidStatusChange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
