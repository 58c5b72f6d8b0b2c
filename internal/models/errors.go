// Sentinel errors shared by the models, repositories, and services.
// Handlers use these to distinguish failure kinds when translating to
// HTTP responses: a seat conflict is a 409, an unknown trip a 404, and
// so on. Repositories wrap lower-level database errors with context but
// always surface one of these values for expected business failures.
package models

import "errors"

var (
	// ErrPatronNotFound is returned when a patron ID does not resolve
	// to an existing record.
	ErrPatronNotFound = errors.New("patron not found")

	// ErrTripNotFound is returned when a trip ID does not resolve to an
	// existing record.
	ErrTripNotFound = errors.New("trip not found")

	// ErrBookingNotFound is returned when cancelling a seat that holds
	// no booking.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrSeatBooked is returned when the requested seat is already
	// taken at commit time.
	ErrSeatBooked = errors.New("seat is already booked")

	// ErrSeatOutOfRange is returned when the requested seat number lies
	// outside [1, bus capacity].
	ErrSeatOutOfRange = errors.New("seat number is out of range for this trip")

	// ErrPatronAlreadyBooked is returned when the patron already holds
	// a booking on the trip.
	ErrPatronAlreadyBooked = errors.New("patron is already booked on this trip")

	// ErrDuplicatePhone is returned when another active patron already
	// uses the phone number.
	ErrDuplicatePhone = errors.New("a patron with this phone number already exists")

	// ErrCapacityBelowBookings is returned when a capacity update would
	// drop below the current booking count.
	ErrCapacityBelowBookings = errors.New("cannot reduce bus capacity below current bookings")

	// ErrTripHasBookings is returned when deleting a trip that still
	// has bookings.
	ErrTripHasBookings = errors.New("cannot delete trip with existing bookings")

	// ErrInvalidStatusChange is returned for trip status transitions
	// outside scheduled -> in-progress -> completed / cancelled.
	ErrInvalidStatusChange = errors.New("invalid trip status transition")
)
