package model

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when no document matches the requested identifier.
var ErrNotFound = errors.New("item not found")

// ValidationError reports malformed client input. It always maps to a 400
// response, never to a server fault.
type ValidationError struct {
	Message string
	Missing []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a plain message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// MissingFieldsError creates a ValidationError listing absent required fields.
func MissingFieldsError(missing []string) *ValidationError {
	return &ValidationError{
		Message: "missing required fields: " + strings.Join(missing, ", "),
		Missing: missing,
	}
}
