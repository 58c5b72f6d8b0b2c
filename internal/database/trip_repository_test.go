package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/superiortours/booking-backend/internal/models"
)

func tripRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "destination", "date", "time", "bus_capacity", "price",
		"departure_location", "return_time", "description", "status",
		"driver_name", "driver_phone", "driver_license",
		"bus_number", "bus_model", "bus_capacity_info",
		"created_at", "updated_at",
	})
}

func TestCreateTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTripRepository(newMockDatabase(db))

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO trips`).
			WillReturnRows(sqlmock.NewRows([]string{"status", "created_at", "updated_at"}).
				AddRow("scheduled", now, now))

		trip := &models.Trip{
			Destination:       "Delaware Park Casino",
			Date:              now.AddDate(0, 0, 14),
			Time:              "09:00",
			BusCapacity:       45,
			Price:             35,
			DepartureLocation: "Superior Tours Office, Baltimore",
		}
		err := repo.Create(trip)
		require.NoError(t, err)
		assert.NotEmpty(t, trip.ID)
		assert.Equal(t, models.TripStatusScheduled, trip.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO trips`).
			WillReturnError(fmt.Errorf("database error"))

		err := repo.Create(&models.Trip{Destination: "Atlantic City"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create trip")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetTripByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTripRepository(newMockDatabase(db))

	t.Run("Success With Driver And Bus", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM trips WHERE id`).
			WithArgs("trip-1").
			WillReturnRows(tripRows().AddRow(
				"trip-1", "Delaware Park Casino", now.AddDate(0, 0, 14), "09:00", 45, 35.0,
				"Superior Tours Office, Baltimore", "18:00", "Day trip with lunch", "scheduled",
				"Mike Johnson", "4105551000", "CDL-12345",
				"ST-001", "MCI J4500", 45,
				now, now,
			))

		trip, err := repo.GetByID("trip-1")
		require.NoError(t, err)
		assert.Equal(t, "Delaware Park Casino", trip.Destination)
		assert.Equal(t, 45, trip.BusCapacity)
		require.NotNil(t, trip.ReturnTime)
		assert.Equal(t, "18:00", *trip.ReturnTime)
		require.NotNil(t, trip.Driver)
		assert.Equal(t, "Mike Johnson", trip.Driver.Name)
		assert.Equal(t, "CDL-12345", trip.Driver.License)
		require.NotNil(t, trip.Bus)
		assert.Equal(t, "ST-001", trip.Bus.Number)
		assert.Equal(t, 45, trip.Bus.Capacity)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success Without Driver And Bus", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM trips WHERE id`).
			WithArgs("trip-2").
			WillReturnRows(tripRows().AddRow(
				"trip-2", "Atlantic City", now.AddDate(0, 0, 21), "10:30", 45, 40.0,
				"Superior Tours Office, Baltimore", nil, nil, "scheduled",
				nil, nil, nil,
				nil, nil, nil,
				now, now,
			))

		trip, err := repo.GetByID("trip-2")
		require.NoError(t, err)
		assert.Nil(t, trip.ReturnTime)
		assert.Nil(t, trip.Description)
		assert.Nil(t, trip.Driver)
		assert.Nil(t, trip.Bus)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM trips WHERE id`).
			WithArgs("trip-99").
			WillReturnError(sql.ErrNoRows)

		trip, err := repo.GetByID("trip-99")
		assert.ErrorIs(t, err, models.ErrTripNotFound)
		assert.Nil(t, trip)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTripRepository(newMockDatabase(db))

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM trips`).
			WithArgs("trip-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete("trip-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM trips`).
			WithArgs("trip-99").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete("trip-99")
		assert.ErrorIs(t, err, models.ErrTripNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetDashboardStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTripRepository(newMockDatabase(db))

	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows([]string{
			"total", "upcoming", "completed", "bookings", "revenue",
		}).AddRow(12, 4, 7, 180, 6300.0))

	stats, err := repo.GetDashboardStats()
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalTrips)
	assert.Equal(t, 4, stats.UpcomingTrips)
	assert.Equal(t, 7, stats.CompletedTrips)
	assert.Equal(t, 180, stats.TotalBookings)
	assert.Equal(t, 6300.0, stats.TotalRevenue)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTrips(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTripRepository(newMockDatabase(db))

	t.Run("Status Filter", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM trips`).
			WithArgs("scheduled").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		mock.ExpectQuery(`SELECT (.+) FROM trips`).
			WithArgs("scheduled", 10, 0).
			WillReturnRows(tripRows().AddRow(
				"trip-1", "Delaware Park Casino", now.AddDate(0, 0, 14), "09:00", 45, 35.0,
				"Superior Tours Office, Baltimore", nil, nil, "scheduled",
				nil, nil, nil,
				nil, nil, nil,
				now, now,
			))

		trips, total, err := repo.List(TripListParams{
			Status: "scheduled", SortBy: "date", SortOrder: "asc", Page: 1, Limit: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, trips, 1)
		assert.Equal(t, models.TripStatusScheduled, trips[0].Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
