package application

import (
	"time"

	"github.com/example/campus-reservations/internal/interval"
)

// Privilege is the two-tier capability set the engine distinguishes. The
// identity collaborator's faculty and admin roles both map to elevated; the
// engine never tells them apart.
type Privilege string

const (
	// PrivilegeOrdinary may request bookings and manage its own records.
	PrivilegeOrdinary Privilege = "ordinary"
	// PrivilegeElevated may approve, reject, create recurring schedules, and
	// act on any record.
	PrivilegeElevated Privilege = "elevated"
)

// Principal is the authenticated caller invoking a service method.
type Principal struct {
	UserID    string
	Privilege Privilege
}

// Elevated reports whether the principal holds the elevated capability.
func (p Principal) Elevated() bool {
	return p.Privilege == PrivilegeElevated
}

// BookingInput captures caller provided booking fields.
type BookingInput struct {
	RoomID  string
	Purpose string
	Date    interval.Date
	Slot    interval.Span
}

// CreateBookingParams wraps the data required to create a booking.
type CreateBookingParams struct {
	Principal Principal
	Input     BookingInput
}

// ListBookingsParams wraps the data required to list bookings. Ordinary
// callers are always narrowed to their own records regardless of the filter.
type ListBookingsParams struct {
	Principal Principal
	RoomID    string
	Date      *interval.Date
}

// TransitionBookingParams wraps the data required to change a booking status.
type TransitionBookingParams struct {
	Principal Principal
	BookingID string
	Target    string
}

// ScheduleInput captures caller provided recurring schedule fields. The
// course code and name are opaque payload the engine stores but never
// interprets.
type ScheduleInput struct {
	RoomID     string
	CourseCode string
	CourseName string
	Weekday    time.Weekday
	Slot       interval.Span
	Term       string
}

// CreateScheduleParams wraps the data required to create a schedule.
type CreateScheduleParams struct {
	Principal Principal
	Input     ScheduleInput
}

// UpdateScheduleParams wraps the data required to replace a schedule.
type UpdateScheduleParams struct {
	Principal  Principal
	ScheduleID string
	Input      ScheduleInput
}
