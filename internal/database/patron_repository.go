package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/superiortours/booking-backend/internal/models"
)

// patronColumns is the select list shared by every patron query.
const patronColumns = `id, name, phone, address, email,
	   emergency_name, emergency_phone, emergency_relationship,
	   notes, is_active, created_at, updated_at`

// patronSortColumns whitelists the sortable fields for patron listings
var patronSortColumns = map[string]string{
	"name":       "name",
	"phone":      "phone",
	"created_at": "created_at",
}

// PatronRepository handles database operations for the patrons table
type PatronRepository struct {
	db DB
}

// NewPatronRepository creates a new PatronRepository
func NewPatronRepository(db DB) *PatronRepository {
	return &PatronRepository{db: db}
}

// PatronListParams holds filtering, sorting and pagination for listings
type PatronListParams struct {
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Create inserts a new active patron
func (r *PatronRepository) Create(patron *models.Patron) error {
	query := `
		INSERT INTO patrons (
			id, name, phone, address, email,
			emergency_name, emergency_phone, emergency_relationship,
			notes, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE)
		RETURNING is_active, created_at, updated_at
	`

	if patron.ID == "" {
		patron.ID = uuid.New().String()
	}

	emergencyName, emergencyPhone, emergencyRelationship := splitEmergencyContact(patron.EmergencyContact)

	err := r.db.QueryRow(
		query,
		patron.ID, patron.Name, patron.Phone, patron.Address, patron.Email,
		emergencyName, emergencyPhone, emergencyRelationship,
		patron.Notes,
	).Scan(&patron.IsActive, &patron.CreatedAt, &patron.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create patron: %w", err)
	}

	return nil
}

// GetByID retrieves a patron by ID
func (r *PatronRepository) GetByID(patronID string) (*models.Patron, error) {
	query := fmt.Sprintf(`SELECT %s FROM patrons WHERE id = $1`, patronColumns)

	patron, err := scanPatron(r.db.QueryRow(query, patronID))
	if err == sql.ErrNoRows {
		return nil, models.ErrPatronNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patron: %w", err)
	}

	return patron, nil
}

// GetActiveByPhone retrieves the active patron holding the phone
// number, excluding the given patron ID (pass "" on create). Returns
// nil without error when no active patron uses the phone.
func (r *PatronRepository) GetActiveByPhone(phone, excludePatronID string) (*models.Patron, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM patrons
		WHERE phone = $1 AND is_active = TRUE AND id != $2
	`, patronColumns)

	patron, err := scanPatron(r.db.QueryRow(query, phone, excludePatronID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patron by phone: %w", err)
	}

	return patron, nil
}

// List retrieves active patrons with search, sorting and pagination.
// Returns the page of patrons and the total match count.
func (r *PatronRepository) List(params PatronListParams) ([]models.Patron, int, error) {
	where := `WHERE is_active = TRUE`
	args := []interface{}{}

	if params.Search != "" {
		where += ` AND (name ILIKE $1 OR phone ILIKE $1 OR address ILIKE $1)`
		args = append(args, "%"+params.Search+"%")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM patrons %s`, where)
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count patrons: %w", err)
	}

	orderBy, ok := patronSortColumns[params.SortBy]
	if !ok {
		orderBy = "name"
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
		SELECT %s FROM patrons %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, patronColumns, where, orderBy, direction, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list patrons: %w", err)
	}
	defer rows.Close()

	patrons, err := scanPatrons(rows)
	if err != nil {
		return nil, 0, err
	}

	return patrons, total, nil
}

// QuickSearch returns up to limit active patrons whose name or phone
// contains the query, ordered by name.
func (r *PatronRepository) QuickSearch(q string, limit int) ([]models.Patron, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM patrons
		WHERE is_active = TRUE AND (name ILIKE $1 OR phone ILIKE $1)
		ORDER BY name
		LIMIT $2
	`, patronColumns)

	rows, err := r.db.Query(query, "%"+q+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search patrons: %w", err)
	}
	defer rows.Close()

	return scanPatrons(rows)
}

// Update updates every editable patron field
func (r *PatronRepository) Update(patron *models.Patron) error {
	query := `
		UPDATE patrons
		SET name = $2, phone = $3, address = $4, email = $5,
			emergency_name = $6, emergency_phone = $7, emergency_relationship = $8,
			notes = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	emergencyName, emergencyPhone, emergencyRelationship := splitEmergencyContact(patron.EmergencyContact)

	err := r.db.QueryRow(
		query,
		patron.ID, patron.Name, patron.Phone, patron.Address, patron.Email,
		emergencyName, emergencyPhone, emergencyRelationship,
		patron.Notes,
	).Scan(&patron.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.ErrPatronNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update patron: %w", err)
	}

	return nil
}

// Deactivate soft-deletes a patron by flipping is_active. The row is
// kept so old bookings continue to resolve.
func (r *PatronRepository) Deactivate(patronID string) error {
	query := `
		UPDATE patrons
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, patronID)
	if err != nil {
		return fmt.Errorf("failed to deactivate patron: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrPatronNotFound
	}

	return nil
}

func splitEmergencyContact(contact *models.EmergencyContact) (name, phone, relationship *string) {
	if contact == nil {
		return nil, nil, nil
	}
	return &contact.Name, &contact.Phone, &contact.Relationship
}

func scanPatron(row scanner) (*models.Patron, error) {
	patron := &models.Patron{}
	var address sql.NullString
	var email sql.NullString
	var emergencyName sql.NullString
	var emergencyPhone sql.NullString
	var emergencyRelationship sql.NullString
	var notes sql.NullString

	err := row.Scan(
		&patron.ID, &patron.Name, &patron.Phone, &address, &email,
		&emergencyName, &emergencyPhone, &emergencyRelationship,
		&notes, &patron.IsActive, &patron.CreatedAt, &patron.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if address.Valid {
		patron.Address = &address.String
	}
	if email.Valid {
		patron.Email = &email.String
	}
	if notes.Valid {
		patron.Notes = &notes.String
	}
	if emergencyName.Valid {
		patron.EmergencyContact = &models.EmergencyContact{
			Name:         emergencyName.String,
			Phone:        emergencyPhone.String,
			Relationship: emergencyRelationship.String,
		}
	}

	return patron, nil
}

func scanPatrons(rows *sql.Rows) ([]models.Patron, error) {
	patrons := []models.Patron{}

	for rows.Next() {
		patron, err := scanPatron(rows)
		if err != nil {
			return nil, err
		}
		patrons = append(patrons, *patron)
	}

	return patrons, rows.Err()
}
