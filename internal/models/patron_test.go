package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreatePatronRequestValidate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		req := CreatePatronRequest{Name: "Mary Johnson", Phone: "4105550123"}
		assert.NoError(t, req.Validate())
	})

	t.Run("Name Too Short", func(t *testing.T) {
		req := CreatePatronRequest{Name: "M", Phone: "4105550123"}
		assert.Error(t, req.Validate())
	})

	t.Run("Name Too Long", func(t *testing.T) {
		req := CreatePatronRequest{Name: strings.Repeat("a", 101), Phone: "4105550123"}
		assert.Error(t, req.Validate())
	})

	t.Run("Invalid Email", func(t *testing.T) {
		email := "not-an-email"
		req := CreatePatronRequest{Name: "Mary Johnson", Phone: "4105550123", Email: &email}
		assert.Error(t, req.Validate())
	})

	t.Run("Empty Email Allowed", func(t *testing.T) {
		email := ""
		req := CreatePatronRequest{Name: "Mary Johnson", Phone: "4105550123", Email: &email}
		assert.NoError(t, req.Validate())
	})

	t.Run("Notes Too Long", func(t *testing.T) {
		notes := strings.Repeat("x", 501)
		req := CreatePatronRequest{Name: "Mary Johnson", Phone: "4105550123", Notes: &notes}
		assert.Error(t, req.Validate())
	})
}
