package models

import (
	"errors"
	"time"
)

// BookingStatus represents the status of a seat booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus represents the payment status of a booking
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Booking represents an assignment of one seat on one trip to one
// patron. A booking never exists outside its trip; the patron is
// referenced by ID only. PatronName and PatronPhone are joined in by
// the repository for display and are not stored on the booking row.
type Booking struct {
	ID            string        `json:"id" db:"id"`
	TripID        string        `json:"trip_id" db:"trip_id"`
	PatronID      string        `json:"patron_id" db:"patron_id"`
	PatronName    *string       `json:"patron_name,omitempty" db:"patron_name"`
	PatronPhone   *string       `json:"patron_phone,omitempty" db:"patron_phone"`
	SeatNumber    int           `json:"seat_number" db:"seat_number"`
	BookingDate   time.Time     `json:"booking_date" db:"booking_date"`
	Status        BookingStatus `json:"status" db:"status"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	Notes         *string       `json:"notes,omitempty" db:"notes"`
}

// BookSeatRequest represents the request to book a seat on a trip
type BookSeatRequest struct {
	PatronID   string  `json:"patron_id" binding:"required"`
	SeatNumber int     `json:"seat_number" binding:"required"`
	Notes      *string `json:"notes,omitempty"`
}

// Validate validates the book seat request
func (r *BookSeatRequest) Validate() error {
	if r.SeatNumber < 1 {
		return errors.New("seat_number must be at least 1")
	}

	return nil
}
