package util

import (
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string using the package's monotonic,
// cryptographically seeded default entropy.
func NewULID() string {
	return ulid.Make().String()
}

// IsULID reports whether s is a well-formed ULID.
func IsULID(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
