package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/superiortours/booking-backend/internal/models"
)

// TripStore loads trip records for the booking service
type TripStore interface {
	GetByID(tripID string) (*models.Trip, error)
}

// PatronStore loads patron records for the booking service
type PatronStore interface {
	GetByID(patronID string) (*models.Patron, error)
}

// BookingStore persists the booking collection of a trip. ClaimSeat
// must be atomic: it either lands the booking on a free seat or
// reports models.ErrSeatBooked without writing anything.
type BookingStore interface {
	GetByTripID(tripID string) ([]models.Booking, error)
	ExistsForPatron(tripID, patronID string) (bool, error)
	ClaimSeat(booking *models.Booking) error
	DeleteBySeat(tripID string, seatNumber int) error
}

// BookingService is the seat ledger: it owns the book/cancel paths for
// a trip's seat inventory and enforces seat uniqueness, capacity
// bounds, and one-active-booking-per-patron. Two racing bookers of the
// same seat are serialized per trip, and the store's conditional
// insert closes the window for writers outside this process.
type BookingService struct {
	trips    TripStore
	patrons  PatronStore
	bookings BookingStore
	locks    *tripLocks
	logger   *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(trips TripStore, patrons PatronStore, bookings BookingStore, logger *logrus.Logger) *BookingService {
	return &BookingService{
		trips:    trips,
		patrons:  patrons,
		bookings: bookings,
		locks:    newTripLocks(),
		logger:   logger,
	}
}

// GetTrip loads a trip with its booking collection attached.
func (s *BookingService) GetTrip(tripID string) (*models.Trip, error) {
	trip, err := s.trips.GetByID(tripID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.GetByTripID(tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for trip: %w", err)
	}
	trip.Bookings = bookings

	return trip, nil
}

// BookSeat books one seat on the trip for the patron. Preconditions
// checked here, in order: trip exists; patron exists and is active;
// seat lies in [1, capacity]; patron holds no other booking on the
// trip; seat is free. On any failure the booking collection is left
// unchanged. Returns the trip with its updated booking collection.
func (s *BookingService) BookSeat(tripID, patronID string, seatNumber int, notes *string) (*models.Trip, error) {
	unlock := s.locks.lock(tripID)
	defer unlock()

	trip, err := s.GetTrip(tripID)
	if err != nil {
		return nil, err
	}

	patron, err := s.patrons.GetByID(patronID)
	if err != nil {
		return nil, err
	}
	if !patron.IsActive {
		return nil, models.ErrPatronNotFound
	}

	if seatNumber < 1 || seatNumber > trip.BusCapacity {
		return nil, models.ErrSeatOutOfRange
	}

	if trip.HasBookingForPatron(patronID) {
		return nil, models.ErrPatronAlreadyBooked
	}

	if !trip.IsSeatAvailable(seatNumber) {
		return nil, models.ErrSeatBooked
	}

	booking := &models.Booking{
		TripID:     tripID,
		PatronID:   patronID,
		SeatNumber: seatNumber,
		Notes:      notes,
	}
	if err := s.bookings.ClaimSeat(booking); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"trip_id":     tripID,
		"patron_id":   patronID,
		"seat_number": seatNumber,
		"booking_id":  booking.ID,
	}).Info("Seat booked")

	bookings, err := s.bookings.GetByTripID(tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload bookings: %w", err)
	}
	trip.Bookings = bookings

	return trip, nil
}

// CancelBooking removes the booking holding the seat from the trip.
// Returns models.ErrBookingNotFound when no booking holds the seat.
func (s *BookingService) CancelBooking(tripID string, seatNumber int) (*models.Trip, error) {
	unlock := s.locks.lock(tripID)
	defer unlock()

	trip, err := s.trips.GetByID(tripID)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.DeleteBySeat(tripID, seatNumber); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"trip_id":     tripID,
		"seat_number": seatNumber,
	}).Info("Booking cancelled")

	bookings, err := s.bookings.GetByTripID(tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload bookings: %w", err)
	}
	trip.Bookings = bookings

	return trip, nil
}

// SeatMap returns the trip and its full 1..capacity seat enumeration.
func (s *BookingService) SeatMap(tripID string) (*models.Trip, []models.SeatMapEntry, error) {
	trip, err := s.GetTrip(tripID)
	if err != nil {
		return nil, nil, err
	}

	return trip, trip.SeatMap(), nil
}
