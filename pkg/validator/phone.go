package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrEmptyPhone indicates phone number is empty
	ErrEmptyPhone = errors.New("phone number cannot be empty")

	// ErrInvalidFormat indicates phone number contains invalid characters
	ErrInvalidFormat = errors.New("phone number can only contain digits and an optional leading +")

	// ErrInvalidLength indicates phone number has too many digits
	ErrInvalidLength = errors.New("phone number cannot exceed 16 digits")

	// ErrLeadingZero indicates phone number starts with zero
	ErrLeadingZero = errors.New("phone number cannot start with 0")
)

// phoneRegex matches an E.164-like number: optional +, first digit
// 1-9, up to 15 further digits.
var phoneRegex = regexp.MustCompile(`^\+?[1-9][0-9]{0,15}$`)

// digitsRegex matches digits with an optional leading +
var digitsRegex = regexp.MustCompile(`^\+?[0-9]+$`)

// PhoneValidator handles patron phone number validation
type PhoneValidator struct{}

// NewPhoneValidator creates a new phone validator instance
func NewPhoneValidator() *PhoneValidator {
	return &PhoneValidator{}
}

// Validate validates a patron phone number. Separators are stripped
// first, so "410-555-0123", "(410) 555 0123", and "+14105550123" all
// pass. Returns the sanitized number (digits, optional leading +).
func (v *PhoneValidator) Validate(phone string) (string, error) {
	if phone == "" {
		return "", ErrEmptyPhone
	}

	sanitized := v.Sanitize(phone)
	if sanitized == "" {
		return "", ErrEmptyPhone
	}

	if !digitsRegex.MatchString(sanitized) {
		return "", ErrInvalidFormat
	}

	digits := strings.TrimPrefix(sanitized, "+")
	if len(digits) > 16 {
		return "", ErrInvalidLength
	}

	if !phoneRegex.MatchString(sanitized) {
		return "", ErrLeadingZero
	}

	return sanitized, nil
}

// Sanitize removes common separators from a phone number
func (v *PhoneValidator) Sanitize(phone string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
	return replacer.Replace(strings.TrimSpace(phone))
}

// IsValid is a convenience method that returns true if phone is valid
func (v *PhoneValidator) IsValid(phone string) bool {
	_, err := v.Validate(phone)
	return err == nil
}

// MustValidate validates and panics if invalid (use for testing only)
func (v *PhoneValidator) MustValidate(phone string) string {
	sanitized, err := v.Validate(phone)
	if err != nil {
		panic(fmt.Sprintf("invalid phone number %s: %v", phone, err))
	}
	return sanitized
}
