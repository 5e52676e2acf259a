// Package uid generates and checks the UUIDs used as request identifiers.
package uid

import "github.com/google/uuid"

// New returns a fresh random identifier.
func New() string {
	return uuid.New().String()
}

// IsValid reports whether s is a well-formed identifier. The empty string is
// not valid.
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
