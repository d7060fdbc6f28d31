package utils

import (
	"errors"
	"fmt"
)

// ErrAuthRequired signals that the caller must authenticate before the
// attempted action can run. It is a control-flow branch, not a failure:
// callers route it to the auth gate instead of surfacing a message.
var ErrAuthRequired = errors.New("authentication required")

// ValidationError is a client-detected, field-scoped input error. It is
// resolved locally and never sent to the backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NetworkError means the backend was unreachable or answered non-2xx.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status code %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// BusinessRuleError is a 2xx backend response with success=false, e.g.
// "email already registered". The message is user-facing.
type BusinessRuleError struct {
	Op      string
	Message string
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UserMessage extracts a message suitable for direct display. Network
// failures get a generic retry prompt so transport details never leak
// into the UI.
func UserMessage(err error) string {
	var bre *BusinessRuleError
	if errors.As(err, &bre) {
		return bre.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return "Something went wrong, please try again"
	}
	return err.Error()
}
