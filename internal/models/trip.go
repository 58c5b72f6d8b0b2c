package models

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

// TripStatus represents the lifecycle status of a trip
type TripStatus string

const (
	TripStatusScheduled  TripStatus = "scheduled"
	TripStatusInProgress TripStatus = "in-progress"
	TripStatusCompleted  TripStatus = "completed"
	TripStatusCancelled  TripStatus = "cancelled"
)

// timeOfDayRegex matches HH:MM departure and return times.
var timeOfDayRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// DriverInfo holds optional driver details for a trip
type DriverInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	License string `json:"license"`
}

// BusInfo holds optional bus details for a trip
type BusInfo struct {
	Number   string `json:"number"`
	Model    string `json:"model"`
	Capacity int    `json:"capacity"`
}

// Trip represents one scheduled bus excursion. A trip exclusively owns
// its booking collection: bookings are loaded and persisted with the
// trip and never exist independently.
type Trip struct {
	ID                string      `json:"id" db:"id"`
	Destination       string      `json:"destination" db:"destination"`
	Date              time.Time   `json:"date" db:"date"`
	Time              string      `json:"time" db:"time"`
	BusCapacity       int         `json:"bus_capacity" db:"bus_capacity"`
	Price             float64     `json:"price" db:"price"`
	DepartureLocation string      `json:"departure_location" db:"departure_location"`
	ReturnTime        *string     `json:"return_time,omitempty" db:"return_time"`
	Description       *string     `json:"description,omitempty" db:"description"`
	Status            TripStatus  `json:"status" db:"status"`
	Driver            *DriverInfo `json:"driver,omitempty" db:"-"`
	Bus               *BusInfo    `json:"bus,omitempty" db:"-"`
	Bookings          []Booking   `json:"bookings" db:"-"`
	CreatedAt         time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at" db:"updated_at"`
}

// IsSeatAvailable reports whether no booking on the trip holds the
// given seat number. Pure query; callers still bounds-check the seat
// against [1, BusCapacity] before booking.
func (t *Trip) IsSeatAvailable(seatNumber int) bool {
	for _, booking := range t.Bookings {
		if booking.SeatNumber == seatNumber {
			return false
		}
	}
	return true
}

// FindBooking returns the booking holding the seat, or nil.
func (t *Trip) FindBooking(seatNumber int) *Booking {
	for i := range t.Bookings {
		if t.Bookings[i].SeatNumber == seatNumber {
			return &t.Bookings[i]
		}
	}
	return nil
}

// HasBookingForPatron reports whether the patron already holds a
// booking on this trip.
func (t *Trip) HasBookingForPatron(patronID string) bool {
	for _, booking := range t.Bookings {
		if booking.PatronID == patronID {
			return true
		}
	}
	return false
}

// BookSeat appends a booking for the patron on the given seat. The
// seat must lie in [1, BusCapacity] and must be free; on failure the
// booking collection is left unchanged.
func (t *Trip) BookSeat(patronID string, seatNumber int) (*Booking, error) {
	if seatNumber < 1 || seatNumber > t.BusCapacity {
		return nil, ErrSeatOutOfRange
	}

	if !t.IsSeatAvailable(seatNumber) {
		return nil, ErrSeatBooked
	}

	if t.HasBookingForPatron(patronID) {
		return nil, ErrPatronAlreadyBooked
	}

	booking := Booking{
		TripID:        t.ID,
		PatronID:      patronID,
		SeatNumber:    seatNumber,
		BookingDate:   time.Now(),
		Status:        BookingStatusConfirmed,
		PaymentStatus: PaymentStatusPending,
	}
	t.Bookings = append(t.Bookings, booking)

	return &t.Bookings[len(t.Bookings)-1], nil
}

// CancelBooking removes the booking holding the seat. Cancellation is
// a hard removal, not a status flip: the row leaves the collection and
// the derived metrics shrink with it.
func (t *Trip) CancelBooking(seatNumber int) error {
	for i, booking := range t.Bookings {
		if booking.SeatNumber == seatNumber {
			t.Bookings = append(t.Bookings[:i], t.Bookings[i+1:]...)
			return nil
		}
	}
	return ErrBookingNotFound
}

// AvailableSeats returns the number of unbooked seats.
func (t *Trip) AvailableSeats() int {
	return t.BusCapacity - len(t.Bookings)
}

// TotalRevenue returns booking count times ticket price.
func (t *Trip) TotalRevenue() float64 {
	return float64(len(t.Bookings)) * t.Price
}

// BookingPercentage returns the booked share of capacity, rounded to
// the nearest whole percent.
func (t *Trip) BookingPercentage() int {
	if t.BusCapacity == 0 {
		return 0
	}
	return int(math.Round(float64(len(t.Bookings)) / float64(t.BusCapacity) * 100))
}

// CanReduceCapacityTo reports whether the capacity can be changed to
// the given value without orphaning existing bookings.
func (t *Trip) CanReduceCapacityTo(capacity int) bool {
	return capacity >= len(t.Bookings)
}

// CanTransitionTo reports whether the status change is allowed:
// scheduled -> in-progress -> completed, or scheduled -> cancelled.
// Transitions are set explicitly by the caller, never by the clock.
func (t *Trip) CanTransitionTo(status TripStatus) bool {
	if status == t.Status {
		return true
	}

	switch t.Status {
	case TripStatusScheduled:
		return status == TripStatusInProgress || status == TripStatusCancelled
	case TripStatusInProgress:
		return status == TripStatusCompleted
	default:
		return false
	}
}

// SeatMapEntry describes one seat in the full 1..capacity enumeration
type SeatMapEntry struct {
	SeatNumber int      `json:"seat_number"`
	IsBooked   bool     `json:"is_booked"`
	Booking    *Booking `json:"booking,omitempty"`
}

// SeatMap enumerates every seat with its booked/free status.
func (t *Trip) SeatMap() []SeatMapEntry {
	seats := make([]SeatMapEntry, 0, t.BusCapacity)
	for i := 1; i <= t.BusCapacity; i++ {
		booking := t.FindBooking(i)
		seats = append(seats, SeatMapEntry{
			SeatNumber: i,
			IsBooked:   booking != nil,
			Booking:    booking,
		})
	}
	return seats
}

// TripResponse decorates a trip with its derived metrics. The metrics
// are computed from the booking collection on every read and are never
// stored, so they cannot drift from the bookings.
type TripResponse struct {
	Trip
	AvailableSeats    int     `json:"available_seats"`
	TotalRevenue      float64 `json:"total_revenue"`
	BookingPercentage int     `json:"booking_percentage"`
}

// NewTripResponse builds the response shape for a trip.
func NewTripResponse(t *Trip) TripResponse {
	if t.Bookings == nil {
		t.Bookings = []Booking{}
	}
	return TripResponse{
		Trip:              *t,
		AvailableSeats:    t.AvailableSeats(),
		TotalRevenue:      t.TotalRevenue(),
		BookingPercentage: t.BookingPercentage(),
	}
}

// CreateTripRequest represents the request to create a trip
type CreateTripRequest struct {
	Destination       string      `json:"destination" binding:"required"`
	Date              string      `json:"date" binding:"required"`
	Time              string      `json:"time" binding:"required"`
	BusCapacity       int         `json:"bus_capacity" binding:"required"`
	Price             *float64    `json:"price" binding:"required"`
	DepartureLocation string      `json:"departure_location" binding:"required"`
	ReturnTime        *string     `json:"return_time,omitempty"`
	Description       *string     `json:"description,omitempty"`
	Driver            *DriverInfo `json:"driver,omitempty"`
	Bus               *BusInfo    `json:"bus,omitempty"`
}

// UpdateTripRequest represents the request to update a trip. Nil
// fields keep their current values.
type UpdateTripRequest struct {
	Destination       *string     `json:"destination,omitempty"`
	Date              *string     `json:"date,omitempty"`
	Time              *string     `json:"time,omitempty"`
	BusCapacity       *int        `json:"bus_capacity,omitempty"`
	Price             *float64    `json:"price,omitempty"`
	DepartureLocation *string     `json:"departure_location,omitempty"`
	ReturnTime        *string     `json:"return_time,omitempty"`
	Description       *string     `json:"description,omitempty"`
	Status            *TripStatus `json:"status,omitempty"`
	Driver            *DriverInfo `json:"driver,omitempty"`
	Bus               *BusInfo    `json:"bus,omitempty"`
}

// Validate validates the create trip request and returns the parsed
// trip date.
func (r *CreateTripRequest) Validate() (time.Time, error) {
	destination := strings.TrimSpace(r.Destination)
	if len(destination) < 2 || len(destination) > 100 {
		return time.Time{}, errors.New("destination must be between 2 and 100 characters")
	}

	date, err := parseTripDate(r.Date)
	if err != nil {
		return time.Time{}, err
	}
	if !date.After(time.Now()) {
		return time.Time{}, errors.New("trip date must be in the future")
	}

	if !timeOfDayRegex.MatchString(r.Time) {
		return time.Time{}, errors.New("please enter a valid time (HH:MM)")
	}

	if r.BusCapacity < 1 || r.BusCapacity > 60 {
		return time.Time{}, errors.New("bus capacity must be between 1 and 60")
	}

	if r.Price == nil || *r.Price < 0 {
		return time.Time{}, errors.New("price must be a positive number")
	}

	location := strings.TrimSpace(r.DepartureLocation)
	if len(location) < 2 || len(location) > 100 {
		return time.Time{}, errors.New("departure location must be between 2 and 100 characters")
	}

	if r.ReturnTime != nil && !timeOfDayRegex.MatchString(*r.ReturnTime) {
		return time.Time{}, errors.New("please enter a valid return time (HH:MM)")
	}

	if r.Description != nil && len(*r.Description) > 500 {
		return time.Time{}, errors.New("description cannot exceed 500 characters")
	}

	return date, nil
}

// Validate validates the update trip request fields that are present.
func (r *UpdateTripRequest) Validate() error {
	if r.Destination != nil {
		destination := strings.TrimSpace(*r.Destination)
		if len(destination) < 2 || len(destination) > 100 {
			return errors.New("destination must be between 2 and 100 characters")
		}
	}

	if r.Date != nil {
		if _, err := parseTripDate(*r.Date); err != nil {
			return err
		}
	}

	if r.Time != nil && !timeOfDayRegex.MatchString(*r.Time) {
		return errors.New("please enter a valid time (HH:MM)")
	}

	if r.BusCapacity != nil && (*r.BusCapacity < 1 || *r.BusCapacity > 60) {
		return errors.New("bus capacity must be between 1 and 60")
	}

	if r.Price != nil && *r.Price < 0 {
		return errors.New("price must be a positive number")
	}

	if r.DepartureLocation != nil {
		location := strings.TrimSpace(*r.DepartureLocation)
		if len(location) < 2 || len(location) > 100 {
			return errors.New("departure location must be between 2 and 100 characters")
		}
	}

	if r.ReturnTime != nil && !timeOfDayRegex.MatchString(*r.ReturnTime) {
		return errors.New("please enter a valid return time (HH:MM)")
	}

	if r.Description != nil && len(*r.Description) > 500 {
		return errors.New("description cannot exceed 500 characters")
	}

	if r.Status != nil {
		switch *r.Status {
		case TripStatusScheduled, TripStatusInProgress, TripStatusCompleted, TripStatusCancelled:
		default:
			return fmt.Errorf("invalid status: %s", *r.Status)
		}
	}

	return nil
}

func parseTripDate(value string) (time.Time, error) {
	if date, err := time.Parse(time.RFC3339, value); err == nil {
		return date, nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, errors.New("date must be in YYYY-MM-DD or RFC3339 format")
	}
	return date, nil
}
