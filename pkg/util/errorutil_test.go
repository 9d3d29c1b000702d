package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Parallel()

	conflict := NewConflict("username already registered")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{name: "domain error", err: conflict, wantStatus: http.StatusConflict, wantCode: "CONFLICT", wantMsg: "username already registered"},
		{name: "wrapped domain error", err: fmt.Errorf("create user: %w", conflict), wantStatus: http.StatusConflict, wantCode: "CONFLICT", wantMsg: "username already registered"},
		{name: "fiber error", err: fiber.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND", wantMsg: "Not Found"},
		{name: "unknown error", err: errors.New("pool closed"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR", wantMsg: "internal server error"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ToDomainError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantStatus, got.HTTPStatus)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}

	assert.Nil(t, ToDomainError(nil))
}

func TestDomainError_WithHeader(t *testing.T) {
	t.Parallel()

	err := NewUnauthorized("unauthorized").WithHeader("WWW-Authenticate", "Bearer")
	assert.Equal(t, "Bearer", err.Headers["WWW-Authenticate"])
}

func TestInternalError_HidesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp 10.0.0.1:5432: connection refused")
	err := NewInternalError(cause)

	assert.Equal(t, "internal server error", err.Message)
	assert.ErrorIs(t, err, cause)
}
