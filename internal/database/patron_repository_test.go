package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/superiortours/booking-backend/internal/models"
)

func TestCreatePatron(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPatronRepository(newMockDatabase(db))

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO patrons`).
			WithArgs(
				sqlmock.AnyArg(), "Mary Johnson", "4105550123", nil, nil,
				nil, nil, nil, nil,
			).
			WillReturnRows(sqlmock.NewRows([]string{"is_active", "created_at", "updated_at"}).
				AddRow(true, now, now))

		patron := &models.Patron{Name: "Mary Johnson", Phone: "4105550123"}
		err := repo.Create(patron)
		require.NoError(t, err)
		assert.NotEmpty(t, patron.ID)
		assert.True(t, patron.IsActive)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO patrons`).
			WillReturnError(fmt.Errorf("database error"))

		patron := &models.Patron{Name: "Mary Johnson", Phone: "4105550123"}
		err := repo.Create(patron)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create patron")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetPatronByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPatronRepository(newMockDatabase(db))

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM patrons WHERE id`).
			WithArgs("patron-1").
			WillReturnRows(patronRows().AddRow(
				"patron-1", "Mary Johnson", "4105550123", "123 Main St", "mary@email.com",
				"John Johnson", "4105550124", "Spouse",
				"Prefers front seats", true, now, now,
			))

		patron, err := repo.GetByID("patron-1")
		require.NoError(t, err)
		assert.Equal(t, "Mary Johnson", patron.Name)
		require.NotNil(t, patron.EmergencyContact)
		assert.Equal(t, "John Johnson", patron.EmergencyContact.Name)
		assert.Equal(t, "Spouse", patron.EmergencyContact.Relationship)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM patrons WHERE id`).
			WithArgs("patron-99").
			WillReturnError(sql.ErrNoRows)

		patron, err := repo.GetByID("patron-99")
		assert.ErrorIs(t, err, models.ErrPatronNotFound)
		assert.Nil(t, patron)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Null Optional Fields", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM patrons WHERE id`).
			WithArgs("patron-2").
			WillReturnRows(patronRows().AddRow(
				"patron-2", "James Wilson", "4105550321", nil, nil,
				nil, nil, nil,
				nil, true, now, now,
			))

		patron, err := repo.GetByID("patron-2")
		require.NoError(t, err)
		assert.Nil(t, patron.Address)
		assert.Nil(t, patron.Email)
		assert.Nil(t, patron.EmergencyContact)
		assert.Nil(t, patron.Notes)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetActiveByPhone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPatronRepository(newMockDatabase(db))

	t.Run("Phone In Use", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM patrons`).
			WithArgs("4105550123", "").
			WillReturnRows(patronRows().AddRow(
				"patron-1", "Mary Johnson", "4105550123", nil, nil,
				nil, nil, nil,
				nil, true, now, now,
			))

		patron, err := repo.GetActiveByPhone("4105550123", "")
		require.NoError(t, err)
		require.NotNil(t, patron)
		assert.Equal(t, "patron-1", patron.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Phone Free", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM patrons`).
			WithArgs("4105559999", "").
			WillReturnError(sql.ErrNoRows)

		patron, err := repo.GetActiveByPhone("4105559999", "")
		require.NoError(t, err)
		assert.Nil(t, patron)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeactivatePatron(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPatronRepository(newMockDatabase(db))

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE patrons`).
			WithArgs("patron-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Deactivate("patron-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE patrons`).
			WithArgs("patron-99").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Deactivate("patron-99")
		assert.ErrorIs(t, err, models.ErrPatronNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListPatrons(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPatronRepository(newMockDatabase(db))

	t.Run("Success With Search", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM patrons`).
			WithArgs("%mary%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		mock.ExpectQuery(`SELECT (.+) FROM patrons`).
			WithArgs("%mary%", 10, 0).
			WillReturnRows(patronRows().AddRow(
				"patron-1", "Mary Johnson", "4105550123", nil, nil,
				nil, nil, nil,
				nil, true, now, now,
			))

		patrons, total, err := repo.List(PatronListParams{
			Search: "mary", SortBy: "name", SortOrder: "asc", Page: 1, Limit: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, patrons, 1)
		assert.Equal(t, "Mary Johnson", patrons[0].Name)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func patronRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "phone", "address", "email",
		"emergency_name", "emergency_phone", "emergency_relationship",
		"notes", "is_active", "created_at", "updated_at",
	})
}

// mockDatabase adapts a sqlmock connection to the DB interface. Select
// goes through sqlx so struct scanning works the same as in production.
type mockDatabase struct {
	db   *sql.DB
	sqlx *sqlx.DB
}

func newMockDatabase(db *sql.DB) *mockDatabase {
	return &mockDatabase{db: db, sqlx: sqlx.NewDb(db, "sqlmock")}
}

func (m *mockDatabase) Get(dest interface{}, query string, args ...interface{}) error {
	return m.sqlx.Get(dest, query, args...)
}

func (m *mockDatabase) Select(dest interface{}, query string, args ...interface{}) error {
	return m.sqlx.Select(dest, query, args...)
}

func (m *mockDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return m.db.Query(query, args...)
}

func (m *mockDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return m.db.QueryRow(query, args...)
}

func (m *mockDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	return m.db.Exec(query, args...)
}

func (m *mockDatabase) Close() error {
	return m.db.Close()
}

func (m *mockDatabase) Ping() error {
	return m.db.Ping()
}
