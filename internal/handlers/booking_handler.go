package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/superiortours/booking-backend/internal/models"
	"github.com/superiortours/booking-backend/internal/services"
)

// BookingHandler serves the seat book/cancel surface for trips
type BookingHandler struct {
	bookingSvc *services.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingSvc *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// BookSeat books a seat on a trip for a patron
// POST /api/trips/:id/book
func (h *BookingHandler) BookSeat(c *gin.Context) {
	var req models.BookSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip, err := h.bookingSvc.BookSeat(c.Param("id"), req.PatronID, req.SeatNumber, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewTripResponse(trip))
}

// CancelBooking cancels the booking holding a seat
// DELETE /api/trips/:id/book/:seatNumber
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	seatNumber, err := strconv.Atoi(c.Param("seatNumber"))
	if err != nil || seatNumber < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid seat number is required"})
		return
	}

	trip, err := h.bookingSvc.CancelBooking(c.Param("id"), seatNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewTripResponse(trip))
}
