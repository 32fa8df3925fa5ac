package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/campus-reservations/internal/application"
	"github.com/example/campus-reservations/internal/interval"
	"github.com/example/campus-reservations/internal/reservation"
)

var (
	bookingCounter  uint64
	scheduleCounter uint64
)

var referenceTime = time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures. It
// falls on a Monday so weekday sensitive fixtures line up by default.
func ReferenceTime() time.Time {
	return referenceTime
}

// ReferenceDate returns the calendar date of ReferenceTime.
func ReferenceDate() interval.Date {
	return interval.DateOf(referenceTime)
}

// MorningSlot returns a 09:00 to 10:30 span used as the default fixture slot.
func MorningSlot() interval.Span {
	return interval.Span{Start: 9 * 60, End: 10*60 + 30}
}

// OrdinaryPrincipal returns a principal with the ordinary capability.
func OrdinaryPrincipal(userID string) application.Principal {
	if userID == "" {
		userID = "student-1"
	}
	return application.Principal{UserID: userID, Privilege: application.PrivilegeOrdinary}
}

// ElevatedPrincipal returns a principal with the elevated capability.
func ElevatedPrincipal(userID string) application.Principal {
	if userID == "" {
		userID = "faculty-1"
	}
	return application.Principal{UserID: userID, Privilege: application.PrivilegeElevated}
}

// BookingOption configures the generated booking fixture.
type BookingOption func(*reservation.Booking)

// NewBooking returns a deterministic approved booking with optional overrides.
func NewBooking(opts ...BookingOption) reservation.Booking {
	idx := atomic.AddUint64(&bookingCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	booking := reservation.Booking{
		ID:          fmt.Sprintf("booking-%03d", idx),
		RoomID:      "room-101",
		RequesterID: "student-1",
		Purpose:     fmt.Sprintf("study group %03d", idx),
		Date:        ReferenceDate(),
		Slot:        MorningSlot(),
		Status:      reservation.StatusApproved,
		CreatedAt:   created,
	}
	for _, opt := range opts {
		opt(&booking)
	}
	return booking
}

// WithBookingID overrides the booking identifier.
func WithBookingID(id string) BookingOption {
	return func(b *reservation.Booking) { b.ID = id }
}

// WithBookingRoom overrides the room key.
func WithBookingRoom(roomID string) BookingOption {
	return func(b *reservation.Booking) { b.RoomID = roomID }
}

// WithBookingRequester overrides the requester.
func WithBookingRequester(userID string) BookingOption {
	return func(b *reservation.Booking) { b.RequesterID = userID }
}

// WithBookingDate overrides the calendar date.
func WithBookingDate(date interval.Date) BookingOption {
	return func(b *reservation.Booking) { b.Date = date }
}

// WithBookingSlot overrides the time span.
func WithBookingSlot(slot interval.Span) BookingOption {
	return func(b *reservation.Booking) { b.Slot = slot }
}

// WithBookingStatus overrides the lifecycle status.
func WithBookingStatus(status reservation.Status) BookingOption {
	return func(b *reservation.Booking) { b.Status = status }
}

// ScheduleOption configures the generated schedule fixture.
type ScheduleOption func(*reservation.Schedule)

// NewSchedule returns a deterministic weekly schedule with optional overrides.
func NewSchedule(opts ...ScheduleOption) reservation.Schedule {
	idx := atomic.AddUint64(&scheduleCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	schedule := reservation.Schedule{
		ID:         fmt.Sprintf("schedule-%03d", idx),
		RoomID:     "room-101",
		OwnerID:    "faculty-1",
		CourseCode: fmt.Sprintf("CS%03d", idx),
		CourseName: fmt.Sprintf("Course %03d", idx),
		Weekday:    time.Monday,
		Slot:       MorningSlot(),
		Term:       "Spring 2025",
		CreatedAt:  created,
		UpdatedAt:  created,
	}
	for _, opt := range opts {
		opt(&schedule)
	}
	return schedule
}

// WithScheduleID overrides the schedule identifier.
func WithScheduleID(id string) ScheduleOption {
	return func(s *reservation.Schedule) { s.ID = id }
}

// WithScheduleRoom overrides the room key.
func WithScheduleRoom(roomID string) ScheduleOption {
	return func(s *reservation.Schedule) { s.RoomID = roomID }
}

// WithScheduleOwner overrides the owner.
func WithScheduleOwner(userID string) ScheduleOption {
	return func(s *reservation.Schedule) { s.OwnerID = userID }
}

// WithScheduleWeekday overrides the weekday.
func WithScheduleWeekday(day time.Weekday) ScheduleOption {
	return func(s *reservation.Schedule) { s.Weekday = day }
}

// WithScheduleSlot overrides the time span.
func WithScheduleSlot(slot interval.Span) ScheduleOption {
	return func(s *reservation.Schedule) { s.Slot = slot }
}

// WithScheduleTerm overrides the term tag.
func WithScheduleTerm(term string) ScheduleOption {
	return func(s *reservation.Schedule) { s.Term = term }
}
