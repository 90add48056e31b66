package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"staybook/shared/failure"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"bad request", failure.BadRequest(errors.New("check_in is required")), http.StatusBadRequest, "check_in is required"},
		{"bad request from string", failure.BadRequestFromString("from must not be after to"), http.StatusBadRequest, "from must not be after to"},
		{"unauthorized", failure.Unauthorized("Missing authorization header"), http.StatusUnauthorized, "Missing authorization header"},
		{"forbidden", failure.Forbidden("only the host can reply"), http.StatusForbidden, "only the host can reply"},
		{"not found", failure.NotFound("listing not found"), http.StatusNotFound, "listing not found"},
		{"conflict", failure.Conflict("listing is not available"), http.StatusConflict, "listing is not available"},
		{"restricted", failure.ResourceRestrictedError, http.StatusForbidden, "You don't have permission to access this resource"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestBadRequestNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("failed to create reservation: %w", failure.Conflict("taken"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))
}

func TestIsPostgresCode(t *testing.T) {
	overlap := fmt.Errorf("insert: %w", &pq.Error{Code: "23P01"})

	assert.True(t, failure.IsPostgresCode(overlap, "23P01"))
	assert.False(t, failure.IsPostgresCode(overlap, "23505"))
	assert.False(t, failure.IsPostgresCode(errors.New("boom"), "23P01"))
}
