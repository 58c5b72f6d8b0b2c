package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPhoneValidator(t *testing.T) {
	validator := NewPhoneValidator()
	assert.NotNil(t, validator)
}

func TestValidate_ValidNumbers(t *testing.T) {
	validator := NewPhoneValidator()

	validNumbers := []struct {
		input    string
		expected string
		name     string
	}{
		{"4105550123", "4105550123", "Plain digits"},
		{"410-555-0123", "4105550123", "With dashes"},
		{"410 555 0123", "4105550123", "With spaces"},
		{"410.555.0123", "4105550123", "With dots"},
		{"(410) 555 0123", "4105550123", "With parentheses"},
		{"+14105550123", "+14105550123", "With country code"},
		{"+1 (410) 555-0123", "+14105550123", "Mixed separators"},
		{"7", "7", "Single digit"},
	}

	for _, tc := range validNumbers {
		t.Run(tc.name, func(t *testing.T) {
			sanitized, err := validator.Validate(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, sanitized)
		})
	}
}

func TestValidate_InvalidNumbers(t *testing.T) {
	validator := NewPhoneValidator()

	invalidNumbers := []struct {
		input       string
		expectedErr error
		name        string
	}{
		{"", ErrEmptyPhone, "Empty string"},
		{"   ", ErrEmptyPhone, "Whitespace only"},
		{"410555012a", ErrInvalidFormat, "Contains letters"},
		{"410 555 012!", ErrInvalidFormat, "Contains special characters"},
		{strings.Repeat("4", 17), ErrInvalidLength, "Too many digits"},
		{"0410555012", ErrLeadingZero, "Leading zero"},
	}

	for _, tc := range invalidNumbers {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validator.Validate(tc.input)
			assert.Error(t, err)
			assert.Equal(t, tc.expectedErr, err)
		})
	}
}

func TestSanitize(t *testing.T) {
	validator := NewPhoneValidator()

	tests := []struct {
		input    string
		expected string
		name     string
	}{
		{"4105550123", "4105550123", "Already clean"},
		{"410 555 0123", "4105550123", "With spaces"},
		{"410-555-0123", "4105550123", "With dashes"},
		{"410.555.0123", "4105550123", "With dots"},
		{"(410) 555 0123", "4105550123", "With parentheses"},
		{"  410-555-0123  ", "4105550123", "With surrounding spaces"},
		{"+1 410 555 0123", "+14105550123", "Plus kept"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := validator.Sanitize(tc.input)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestIsValid(t *testing.T) {
	validator := NewPhoneValidator()

	assert.True(t, validator.IsValid("410-555-0123"))
	assert.True(t, validator.IsValid("+14105550123"))
	assert.False(t, validator.IsValid(""))
	assert.False(t, validator.IsValid("0410555012"))
	assert.False(t, validator.IsValid("call-me-maybe"))
}

func TestMustValidate(t *testing.T) {
	validator := NewPhoneValidator()

	assert.Equal(t, "4105550123", validator.MustValidate("410-555-0123"))
	assert.Panics(t, func() { validator.MustValidate("bad") })
}
