// Package reservation defines the two reservation kinds the engine manages
// and the pure conflict detection that protects the single-occupancy
// invariant: at most one granted reservation may hold a room at a time.
package reservation

import (
	"time"

	"github.com/example/campus-reservations/internal/interval"
)

// Status tracks the approval lifecycle of an ad-hoc booking.
type Status string

const (
	// StatusPending marks a booking awaiting an elevated caller's decision.
	StatusPending Status = "pending"
	// StatusApproved marks a booking that authoritatively occupies its slot.
	StatusApproved Status = "approved"
	// StatusRejected marks a booking that was declined or revoked. Rejected
	// bookings remain queryable but never occupy a slot.
	StatusRejected Status = "rejected"
)

// Valid reports whether the value is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Kind discriminates the two reservation variants.
type Kind string

const (
	// KindBooking is a one-off reservation on a concrete calendar date.
	KindBooking Kind = "booking"
	// KindSchedule is a standing weekly allocation for a named term.
	KindSchedule Kind = "schedule"
)

// Booking is an ad-hoc reservation of a room for a single date. It is created
// pending (or approved directly by an elevated caller) and moves through the
// lifecycle state machine until it is rejected or deleted.
type Booking struct {
	ID          string
	RoomID      string
	RequesterID string
	Purpose     string
	Date        interval.Date
	Slot        interval.Span
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Schedule is a recurring weekly allocation of a room for the duration of a
// term. Schedules have no approval workflow: existence is the grant.
type Schedule struct {
	ID         string
	RoomID     string
	OwnerID    string
	CourseCode string
	CourseName string
	Weekday    time.Weekday
	Slot       interval.Span
	Term       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OwnedBy reports whether the booking belongs to the given requester.
func (b Booking) OwnedBy(userID string) bool {
	return userID != "" && b.RequesterID == userID
}

// OwnedBy reports whether the schedule belongs to the given owner.
func (s Schedule) OwnedBy(userID string) bool {
	return userID != "" && s.OwnerID == userID
}
