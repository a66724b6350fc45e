// Package uuid generates and checks request identifiers.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a time-ordered UUIDv7 string, falling back to a random v4 if
// the v7 generator fails.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.NewString()
	}
	return id.String()
}

// IsValid reports whether s is a well-formed UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}

// FromHeader returns the inbound id when it is a valid UUID, otherwise a
// freshly generated one.
func FromHeader(value string) string {
	if value != "" && len(value) <= 64 && IsValid(value) {
		return value
	}
	return New()
}
