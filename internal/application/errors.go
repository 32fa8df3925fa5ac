package application

import (
	"errors"
	"fmt"

	"github.com/example/campus-reservations/internal/reservation"
)

var (
	// ErrUnauthorized is returned when the acting principal lacks the
	// ownership or privilege an operation requires.
	ErrUnauthorized = errors.New("application: not allowed")
	// ErrNotFound is returned when the referenced reservation does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrConflict is returned when granting a request would overlap an
	// already granted reservation on the same room.
	ErrConflict = errors.New("application: slot already taken")
	// ErrInvalidTransition is returned when a status change is not permitted
	// by the lifecycle state machine.
	ErrInvalidTransition = errors.New("application: invalid status transition")
)

// ConflictError wraps ErrConflict and names the reservation that already
// occupies the requested slot.
type ConflictError struct {
	With reservation.Conflict
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot already taken by %s %s (%s)", e.With.Kind, e.With.ID, e.With.Slot)
}

// Unwrap lets errors.Is(err, ErrConflict) match.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ValidationError captures field level validation issues that callers can
// surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
