package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidation(t *testing.T) {
	err := NewValidationError("email", "email is required")
	assert.True(t, IsValidation(err))
	assert.True(t, IsValidation(fmt.Errorf("submit: %w", err)))
	assert.False(t, IsValidation(errors.New("boom")))
	assert.False(t, IsValidation(&NetworkError{Op: "GET /x", StatusCode: 500}))
}

func TestUserMessageByErrorKind(t *testing.T) {
	assert.Equal(t, "email is required", UserMessage(NewValidationError("email", "email is required")))
	assert.Equal(t, "Email already registered", UserMessage(&BusinessRuleError{Op: "register", Message: "Email already registered"}))

	// Transport details never leak into the UI.
	msg := UserMessage(&NetworkError{Op: "POST /api/search", StatusCode: 503})
	assert.NotContains(t, msg, "503")
	assert.NotContains(t, msg, "/api/search")

	wrapped := fmt.Errorf("search: %w", &NetworkError{Op: "POST /api/search", Err: errors.New("dial tcp: refused")})
	assert.NotContains(t, UserMessage(wrapped), "dial tcp")
}

func TestNetworkErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &NetworkError{Op: "GET /api/requests", Err: cause}
	assert.ErrorIs(t, err, cause)
}

func TestMountLifecycle(t *testing.T) {
	m := NewMount()
	assert.True(t, m.Alive())
	m.Close()
	assert.False(t, m.Alive())
	m.Close()
	assert.False(t, m.Alive())
}
