package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a record with the same identifier exists.
	ErrDuplicate = errors.New("persistence: duplicate record")
	// ErrConstraintViolation is returned when a write breaks a schema check.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
	// ErrBusy is returned when the store is transiently unavailable and the
	// operation may be retried.
	ErrBusy = errors.New("persistence: store busy")
)
