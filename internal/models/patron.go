package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// emailRegex mirrors the boundary validation used on patron intake.
var emailRegex = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// EmergencyContact holds the optional emergency contact for a patron
type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// Patron represents a customer who may hold seat bookings.
// Patrons are never physically removed; deactivation flips IsActive.
type Patron struct {
	ID               string            `json:"id" db:"id"`
	Name             string            `json:"name" db:"name"`
	Phone            string            `json:"phone" db:"phone"`
	Address          *string           `json:"address,omitempty" db:"address"`
	Email            *string           `json:"email,omitempty" db:"email"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty" db:"-"`
	Notes            *string           `json:"notes,omitempty" db:"notes"`
	IsActive         bool              `json:"is_active" db:"is_active"`
	CreatedAt        time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at" db:"updated_at"`
}

// CreatePatronRequest represents the request to create a patron
type CreatePatronRequest struct {
	Name             string            `json:"name" binding:"required"`
	Phone            string            `json:"phone" binding:"required"`
	Address          *string           `json:"address,omitempty"`
	Email            *string           `json:"email,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
	Notes            *string           `json:"notes,omitempty"`
}

// UpdatePatronRequest represents the request to update a patron.
// All fields are re-validated; omitted optional fields are cleared.
type UpdatePatronRequest struct {
	Name             string            `json:"name" binding:"required"`
	Phone            string            `json:"phone" binding:"required"`
	Address          *string           `json:"address,omitempty"`
	Email            *string           `json:"email,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
	Notes            *string           `json:"notes,omitempty"`
}

// Validate validates the create patron request
func (r *CreatePatronRequest) Validate() error {
	return validatePatronFields(r.Name, r.Address, r.Email, r.Notes)
}

// Validate validates the update patron request
func (r *UpdatePatronRequest) Validate() error {
	return validatePatronFields(r.Name, r.Address, r.Email, r.Notes)
}

func validatePatronFields(name string, address, email, notes *string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 100 {
		return errors.New("name must be between 2 and 100 characters")
	}

	if address != nil && len(*address) > 200 {
		return errors.New("address cannot exceed 200 characters")
	}

	if email != nil && *email != "" && !emailRegex.MatchString(*email) {
		return errors.New("please enter a valid email address")
	}

	if notes != nil && len(*notes) > 500 {
		return errors.New("notes cannot exceed 500 characters")
	}

	return nil
}
