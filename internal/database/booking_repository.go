package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/superiortours/booking-backend/internal/models"
)

// BookingRepository handles database operations for the bookings table
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// ClaimSeat inserts the booking only if the seat is still free. The
// insert and the availability check run as one statement, so two
// racing claims for the same seat can never both land: the loser sees
// zero rows affected and gets ErrSeatBooked. A unique index on
// (trip_id, seat_number) backs this at the schema level.
func (r *BookingRepository) ClaimSeat(booking *models.Booking) error {
	query := `
		INSERT INTO bookings (
			id, trip_id, patron_id, seat_number,
			booking_date, status, payment_status, notes
		)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8
		WHERE NOT EXISTS (
			SELECT 1 FROM bookings
			WHERE trip_id = $2 AND seat_number = $4
		)
	`

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.BookingDate.IsZero() {
		booking.BookingDate = time.Now()
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusConfirmed
	}
	if booking.PaymentStatus == "" {
		booking.PaymentStatus = models.PaymentStatusPending
	}

	result, err := r.db.Exec(
		query,
		booking.ID, booking.TripID, booking.PatronID, booking.SeatNumber,
		booking.BookingDate, booking.Status, booking.PaymentStatus, booking.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to book seat: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrSeatBooked
	}

	return nil
}

// GetByTripID retrieves all bookings for a trip ordered by seat
// number, with the patron's name and phone joined in for display.
func (r *BookingRepository) GetByTripID(tripID string) ([]models.Booking, error) {
	query := `
		SELECT b.id, b.trip_id, b.patron_id, p.name AS patron_name, p.phone AS patron_phone,
			   b.seat_number, b.booking_date, b.status, b.payment_status, b.notes
		FROM bookings b
		JOIN patrons p ON p.id = b.patron_id
		WHERE b.trip_id = $1
		ORDER BY b.seat_number
	`

	bookings := []models.Booking{}
	if err := r.db.Select(&bookings, query, tripID); err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	return bookings, nil
}

// CountByTripID returns the number of bookings on a trip
func (r *BookingRepository) CountByTripID(tripID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM bookings WHERE trip_id = $1`, tripID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return count, nil
}

// ExistsForPatron reports whether the patron already holds a booking
// on the trip.
func (r *BookingRepository) ExistsForPatron(tripID, patronID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE trip_id = $1 AND patron_id = $2)`
	err := r.db.QueryRow(query, tripID, patronID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check patron booking: %w", err)
	}

	return exists, nil
}

// DeleteBySeat removes the booking holding the seat. Cancellation is a
// hard removal: the row is gone, not flipped to cancelled, so derived
// revenue and occupancy follow the live booking count.
func (r *BookingRepository) DeleteBySeat(tripID string, seatNumber int) error {
	result, err := r.db.Exec(
		`DELETE FROM bookings WHERE trip_id = $1 AND seat_number = $2`,
		tripID, seatNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrBookingNotFound
	}

	return nil
}
