package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/superiortours/booking-backend/internal/models"
)

const tripColumns = `id, destination, date, time, bus_capacity, price,
	   departure_location, return_time, description, status,
	   driver_name, driver_phone, driver_license,
	   bus_number, bus_model, bus_capacity_info,
	   created_at, updated_at`

// tripSortColumns whitelists the sortable fields for trip listings
var tripSortColumns = map[string]string{
	"date":        "date",
	"destination": "destination",
	"price":       "price",
	"created_at":  "created_at",
}

// TripRepository handles database operations for the trips table
type TripRepository struct {
	db DB
}

// NewTripRepository creates a new TripRepository
func NewTripRepository(db DB) *TripRepository {
	return &TripRepository{db: db}
}

// TripListParams holds filtering, sorting and pagination for listings
type TripListParams struct {
	Search    string
	Status    string
	DateFrom  *time.Time
	DateTo    *time.Time
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// DashboardStats aggregates booking activity across all trips
type DashboardStats struct {
	TotalTrips     int     `json:"total_trips"`
	UpcomingTrips  int     `json:"upcoming_trips"`
	CompletedTrips int     `json:"completed_trips"`
	TotalBookings  int     `json:"total_bookings"`
	TotalRevenue   float64 `json:"total_revenue"`
}

// Create inserts a new trip with status scheduled
func (r *TripRepository) Create(trip *models.Trip) error {
	query := `
		INSERT INTO trips (
			id, destination, date, time, bus_capacity, price,
			departure_location, return_time, description, status,
			driver_name, driver_phone, driver_license,
			bus_number, bus_model, bus_capacity_info
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING status, created_at, updated_at
	`

	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.Status == "" {
		trip.Status = models.TripStatusScheduled
	}

	driverName, driverPhone, driverLicense := splitDriverInfo(trip.Driver)
	busNumber, busModel, busCapacity := splitBusInfo(trip.Bus)

	err := r.db.QueryRow(
		query,
		trip.ID, trip.Destination, trip.Date, trip.Time, trip.BusCapacity, trip.Price,
		trip.DepartureLocation, trip.ReturnTime, trip.Description, trip.Status,
		driverName, driverPhone, driverLicense,
		busNumber, busModel, busCapacity,
	).Scan(&trip.Status, &trip.CreatedAt, &trip.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}

	return nil
}

// GetByID retrieves a trip by ID without its bookings
func (r *TripRepository) GetByID(tripID string) (*models.Trip, error) {
	query := fmt.Sprintf(`SELECT %s FROM trips WHERE id = $1`, tripColumns)

	trip, err := scanTrip(r.db.QueryRow(query, tripID))
	if err == sql.ErrNoRows {
		return nil, models.ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trip: %w", err)
	}

	return trip, nil
}

// List retrieves trips with search, filters, sorting and pagination.
// Returns the page of trips and the total match count.
func (r *TripRepository) List(params TripListParams) ([]models.Trip, int, error) {
	conditions := []string{}
	args := []interface{}{}

	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(destination ILIKE $%d OR departure_location ILIKE $%d)", len(args), len(args)))
	}
	if params.Status != "" {
		args = append(args, params.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if params.DateFrom != nil {
		args = append(args, *params.DateFrom)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if params.DateTo != nil {
		args = append(args, *params.DateTo)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM trips %s`, where)
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trips: %w", err)
	}

	orderBy, ok := tripSortColumns[params.SortBy]
	if !ok {
		orderBy = "date"
	}
	direction := "ASC"
	if strings.EqualFold(params.SortOrder, "desc") {
		direction = "DESC"
	}

	limit := params.Limit
	if limit < 1 {
		limit = 10
	}
	page := params.Page
	if page < 1 {
		page = 1
	}

	query := fmt.Sprintf(`
		SELECT %s FROM trips %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, tripColumns, where, orderBy, direction, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	trips := []models.Trip{}
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, 0, err
		}
		trips = append(trips, *trip)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return trips, total, nil
}

// GetUpcoming returns the next scheduled trips from today onwards,
// soonest first.
func (r *TripRepository) GetUpcoming(limit int) ([]models.Trip, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM trips
		WHERE date >= NOW() AND status = $1
		ORDER BY date
		LIMIT $2
	`, tripColumns)

	rows, err := r.db.Query(query, models.TripStatusScheduled, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming trips: %w", err)
	}
	defer rows.Close()

	trips := []models.Trip{}
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, *trip)
	}

	return trips, rows.Err()
}

// Update updates every editable trip field
func (r *TripRepository) Update(trip *models.Trip) error {
	query := `
		UPDATE trips
		SET destination = $2, date = $3, time = $4, bus_capacity = $5, price = $6,
			departure_location = $7, return_time = $8, description = $9, status = $10,
			driver_name = $11, driver_phone = $12, driver_license = $13,
			bus_number = $14, bus_model = $15, bus_capacity_info = $16,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	driverName, driverPhone, driverLicense := splitDriverInfo(trip.Driver)
	busNumber, busModel, busCapacity := splitBusInfo(trip.Bus)

	err := r.db.QueryRow(
		query,
		trip.ID, trip.Destination, trip.Date, trip.Time, trip.BusCapacity, trip.Price,
		trip.DepartureLocation, trip.ReturnTime, trip.Description, trip.Status,
		driverName, driverPhone, driverLicense,
		busNumber, busModel, busCapacity,
	).Scan(&trip.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.ErrTripNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}

	return nil
}

// Delete removes a trip. Callers must check the deletion guard (no
// remaining bookings) first; the bookings table also cascades, so this
// is a hard stop before data loss.
func (r *TripRepository) Delete(tripID string) error {
	result, err := r.db.Exec(`DELETE FROM trips WHERE id = $1`, tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrTripNotFound
	}

	return nil
}

// GetDashboardStats aggregates trip and booking counts for the
// operator dashboard.
func (r *TripRepository) GetDashboardStats() (*DashboardStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE date >= NOW() AND status = 'scheduled'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COALESCE((SELECT COUNT(*) FROM bookings), 0),
			COALESCE((SELECT SUM(t.price) FROM bookings b JOIN trips t ON t.id = b.trip_id), 0)
		FROM trips
	`

	stats := &DashboardStats{}
	err := r.db.QueryRow(query).Scan(
		&stats.TotalTrips,
		&stats.UpcomingTrips,
		&stats.CompletedTrips,
		&stats.TotalBookings,
		&stats.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dashboard stats: %w", err)
	}

	return stats, nil
}

func splitDriverInfo(driver *models.DriverInfo) (name, phone, license *string) {
	if driver == nil {
		return nil, nil, nil
	}
	return &driver.Name, &driver.Phone, &driver.License
}

func splitBusInfo(bus *models.BusInfo) (number, model *string, capacity *int) {
	if bus == nil {
		return nil, nil, nil
	}
	return &bus.Number, &bus.Model, &bus.Capacity
}

func scanTrip(row scanner) (*models.Trip, error) {
	trip := &models.Trip{}
	var returnTime sql.NullString
	var description sql.NullString
	var driverName sql.NullString
	var driverPhone sql.NullString
	var driverLicense sql.NullString
	var busNumber sql.NullString
	var busModel sql.NullString
	var busCapacity sql.NullInt64

	err := row.Scan(
		&trip.ID, &trip.Destination, &trip.Date, &trip.Time, &trip.BusCapacity, &trip.Price,
		&trip.DepartureLocation, &returnTime, &description, &trip.Status,
		&driverName, &driverPhone, &driverLicense,
		&busNumber, &busModel, &busCapacity,
		&trip.CreatedAt, &trip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if returnTime.Valid {
		trip.ReturnTime = &returnTime.String
	}
	if description.Valid {
		trip.Description = &description.String
	}
	if driverName.Valid {
		trip.Driver = &models.DriverInfo{
			Name:    driverName.String,
			Phone:   driverPhone.String,
			License: driverLicense.String,
		}
	}
	if busNumber.Valid {
		trip.Bus = &models.BusInfo{
			Number:   busNumber.String,
			Model:    busModel.String,
			Capacity: int(busCapacity.Int64),
		}
	}

	return trip, nil
}
