package store

import "errors"

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ConflictError reports which uniqueness constraint a student insert collided
// with. Field is "email", "mobile", or "both" when both constraints conflict
// at once.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return "student already exists: " + e.Field
}
