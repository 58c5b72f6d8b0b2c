package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/superiortours/booking-backend/internal/database"
	"github.com/superiortours/booking-backend/internal/models"
	"github.com/superiortours/booking-backend/internal/services"
)

// TripHandler serves the trip CRUD surface plus the derived views
// (seat map, manifest, dashboard stats)
type TripHandler struct {
	tripRepo    *database.TripRepository
	bookingRepo *database.BookingRepository
	bookingSvc  *services.BookingService
	manifestSvc *services.ManifestService
}

// NewTripHandler creates a new TripHandler
func NewTripHandler(
	tripRepo *database.TripRepository,
	bookingRepo *database.BookingRepository,
	bookingSvc *services.BookingService,
	manifestSvc *services.ManifestService,
) *TripHandler {
	return &TripHandler{
		tripRepo:    tripRepo,
		bookingRepo: bookingRepo,
		bookingSvc:  bookingSvc,
		manifestSvc: manifestSvc,
	}
}

// ListTrips retrieves trips with search, filters and pagination
// GET /api/trips
func (h *TripHandler) ListTrips(c *gin.Context) {
	params := database.TripListParams{
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		SortBy:    c.DefaultQuery("sortBy", "date"),
		SortOrder: c.DefaultQuery("sortOrder", "asc"),
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 10),
	}

	if from := c.Query("dateFrom"); from != "" {
		date, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dateFrom must be in YYYY-MM-DD format"})
			return
		}
		params.DateFrom = &date
	}
	if to := c.Query("dateTo"); to != "" {
		date, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dateTo must be in YYYY-MM-DD format"})
			return
		}
		params.DateTo = &date
	}

	trips, total, err := h.tripRepo.List(params)
	if err != nil {
		respondError(c, err)
		return
	}

	responses, err := h.withBookings(trips)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trips":        responses,
		"total_pages":  totalPages(total, params.Limit),
		"current_page": params.Page,
		"total_trips":  total,
	})
}

// GetTrip retrieves a trip with bookings and derived metrics
// GET /api/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.bookingSvc.GetTrip(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewTripResponse(trip))
}

// CreateTrip creates a new trip
// POST /api/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := req.Validate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip := &models.Trip{
		Destination:       req.Destination,
		Date:              date,
		Time:              req.Time,
		BusCapacity:       req.BusCapacity,
		Price:             *req.Price,
		DepartureLocation: req.DepartureLocation,
		ReturnTime:        req.ReturnTime,
		Description:       req.Description,
		Driver:            req.Driver,
		Bus:               req.Bus,
	}

	if err := h.tripRepo.Create(trip); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewTripResponse(trip))
}

// UpdateTrip updates a trip. Capacity may not drop below the current
// booking count, and status changes must follow the trip lifecycle.
// PUT /api/trips/:id
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	var req models.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip, err := h.bookingSvc.GetTrip(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if req.BusCapacity != nil && !trip.CanReduceCapacityTo(*req.BusCapacity) {
		respondError(c, models.ErrCapacityBelowBookings)
		return
	}

	if req.Status != nil && !trip.CanTransitionTo(*req.Status) {
		respondError(c, models.ErrInvalidStatusChange)
		return
	}

	applyTripUpdate(trip, &req)

	if err := h.tripRepo.Update(trip); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewTripResponse(trip))
}

// DeleteTrip removes a trip that has no bookings
// DELETE /api/trips/:id
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	tripID := c.Param("id")

	count, err := h.bookingRepo.CountByTripID(tripID)
	if err != nil {
		respondError(c, err)
		return
	}
	if count > 0 {
		respondError(c, models.ErrTripHasBookings)
		return
	}

	if err := h.tripRepo.Delete(tripID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted successfully"})
}

// GetSeatMap returns the full seat enumeration for a trip
// GET /api/trips/:id/seats
func (h *TripHandler) GetSeatMap(c *gin.Context) {
	trip, seatMap, err := h.bookingSvc.SeatMap(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trip":               models.NewTripResponse(trip),
		"seat_map":           seatMap,
		"available_seats":    trip.AvailableSeats(),
		"total_revenue":      trip.TotalRevenue(),
		"booking_percentage": trip.BookingPercentage(),
	})
}

// GetManifest renders the passenger manifest PDF for a trip
// GET /api/trips/:id/manifest
func (h *TripHandler) GetManifest(c *gin.Context) {
	trip, err := h.bookingSvc.GetTrip(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	data, filename, err := h.manifestSvc.BuildTripManifest(trip)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// GetDashboardStats returns operator dashboard aggregates
// GET /api/trips/dashboard/stats
func (h *TripHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.tripRepo.GetDashboardStats()
	if err != nil {
		respondError(c, err)
		return
	}

	upcoming, err := h.tripRepo.GetUpcoming(5)
	if err != nil {
		respondError(c, err)
		return
	}

	responses, err := h.withBookings(upcoming)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_trips":     stats.TotalTrips,
		"upcoming_trips":  stats.UpcomingTrips,
		"completed_trips": stats.CompletedTrips,
		"total_bookings":  stats.TotalBookings,
		"total_revenue":   stats.TotalRevenue,
		"upcoming_list":   responses,
	})
}

// withBookings attaches booking collections and derived metrics to a
// page of trips.
func (h *TripHandler) withBookings(trips []models.Trip) ([]models.TripResponse, error) {
	responses := make([]models.TripResponse, 0, len(trips))
	for i := range trips {
		bookings, err := h.bookingRepo.GetByTripID(trips[i].ID)
		if err != nil {
			return nil, err
		}
		trips[i].Bookings = bookings
		responses = append(responses, models.NewTripResponse(&trips[i]))
	}
	return responses, nil
}

func applyTripUpdate(trip *models.Trip, req *models.UpdateTripRequest) {
	if req.Destination != nil {
		trip.Destination = *req.Destination
	}
	if req.Date != nil {
		// Validate() already checked the format
		if date, err := time.Parse("2006-01-02", *req.Date); err == nil {
			trip.Date = date
		} else if date, err := time.Parse(time.RFC3339, *req.Date); err == nil {
			trip.Date = date
		}
	}
	if req.Time != nil {
		trip.Time = *req.Time
	}
	if req.BusCapacity != nil {
		trip.BusCapacity = *req.BusCapacity
	}
	if req.Price != nil {
		trip.Price = *req.Price
	}
	if req.DepartureLocation != nil {
		trip.DepartureLocation = *req.DepartureLocation
	}
	if req.ReturnTime != nil {
		trip.ReturnTime = req.ReturnTime
	}
	if req.Description != nil {
		trip.Description = req.Description
	}
	if req.Status != nil {
		trip.Status = *req.Status
	}
	if req.Driver != nil {
		trip.Driver = req.Driver
	}
	if req.Bus != nil {
		trip.Bus = req.Bus
	}
}
