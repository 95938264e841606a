package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
		field  string
		is     error
	}{
		{"sqlite unique", errors.New("UNIQUE constraint failed: categories.slug"), http.StatusConflict, "slug", ErrAlreadyExists},
		{"postgres unique", errors.New(`ERROR: duplicate key value violates unique constraint "idx_categories_slug"`), http.StatusConflict, "", ErrAlreadyExists},
		{"not found", errors.New("record not found"), http.StatusNotFound, "", ErrNotFound},
		{"refused", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), http.StatusServiceUnavailable, "", ErrDatabaseConnection},
		{"other", errors.New("syntax error at or near"), http.StatusInternalServerError, "", ErrDatabaseQuery},
		{"nil", nil, http.StatusInternalServerError, "", ErrDatabaseQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create", "category", tt.cause)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.Equal(t, tt.field, err.Field)
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestGetFullError(t *testing.T) {
	root := errors.New("timeout")
	inner := NewDatabaseError("update", "inquiry", root)
	outer := NewInternalErrorWithCause("changing status", inner)

	assert.Equal(t, "changing status -> database query failed: Failed to update inquiry -> timeout", outer.GetFullError())
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.Equal(t, "team member not found", NewNotFound("team member").GetFullError())
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, StatusOf(NewCSRFError(nil)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, StatusOf(NewMaxBodySizeExceededError(5<<20)))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	err := NewMissingRequiredFieldError("name")
	assert.True(t, IsMissingRequiredFieldError(err))
	assert.Equal(t, "name", err.Field)
	assert.False(t, IsNotFound(err))

	assert.True(t, IsNotFound(NewNotFound("slide")))
	assert.True(t, IsConfigMissingError(NewConfigMissingError("JWT_SECRET")))
}
