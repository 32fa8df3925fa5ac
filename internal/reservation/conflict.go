package reservation

import (
	"time"

	"github.com/example/campus-reservations/internal/interval"
)

// Candidate describes a requested occupancy to check against the existing
// grant-equivalent set. Exactly one of Date (booking) or Weekday+Term
// (schedule) identifies the day key, discriminated by Kind.
type Candidate struct {
	Kind    Kind
	RoomID  string
	Slot    interval.Span
	Date    interval.Date
	Weekday time.Weekday
	Term    string
	// ExcludeID skips one reservation during the scan, so a record being
	// re-validated never conflicts with itself.
	ExcludeID string
}

// BookingCandidate builds a Candidate for an ad-hoc occupancy.
func BookingCandidate(roomID string, date interval.Date, slot interval.Span) Candidate {
	return Candidate{Kind: KindBooking, RoomID: roomID, Slot: slot, Date: date}
}

// ScheduleCandidate builds a Candidate for a recurring occupancy.
func ScheduleCandidate(roomID string, weekday time.Weekday, term string, slot interval.Span) Candidate {
	return Candidate{Kind: KindSchedule, RoomID: roomID, Slot: slot, Weekday: weekday, Term: term}
}

// WithExclusion returns a copy of the candidate that ignores the identified
// reservation while scanning.
func (c Candidate) WithExclusion(id string) Candidate {
	c.ExcludeID = id
	return c
}

// Conflict identifies the grant-equivalent reservation that already occupies
// the candidate's slot.
type Conflict struct {
	Kind    Kind
	ID      string
	RoomID  string
	OwnerID string
	Slot    interval.Span
}

// FindConflict scans the grant-equivalent set for the candidate's room and
// returns the first reservation whose occupancy overlaps the candidate, or
// nil when the slot is free. Bookings in the input are expected to be
// approved; pending and rejected bookings never occupy a slot and must not be
// passed in. Schedules always count: existence is the grant.
func FindConflict(bookings []Booking, schedules []Schedule, candidate Candidate, calendar interval.TermCalendar) *Conflict {
	for _, booking := range bookings {
		if booking.ID == candidate.ExcludeID || booking.RoomID != candidate.RoomID {
			continue
		}
		if !bookingDayMatches(booking, candidate, calendar) {
			continue
		}
		if booking.Slot.Overlaps(candidate.Slot) {
			return &Conflict{
				Kind:    KindBooking,
				ID:      booking.ID,
				RoomID:  booking.RoomID,
				OwnerID: booking.RequesterID,
				Slot:    booking.Slot,
			}
		}
	}

	for _, schedule := range schedules {
		if schedule.ID == candidate.ExcludeID || schedule.RoomID != candidate.RoomID {
			continue
		}
		if !scheduleDayMatches(schedule, candidate, calendar) {
			continue
		}
		if schedule.Slot.Overlaps(candidate.Slot) {
			return &Conflict{
				Kind:    KindSchedule,
				ID:      schedule.ID,
				RoomID:  schedule.RoomID,
				OwnerID: schedule.OwnerID,
				Slot:    schedule.Slot,
			}
		}
	}

	return nil
}

// bookingDayMatches decides whether an existing booking's date can coincide
// with the candidate's day key.
func bookingDayMatches(booking Booking, candidate Candidate, calendar interval.TermCalendar) bool {
	switch candidate.Kind {
	case KindBooking:
		return booking.Date == candidate.Date
	case KindSchedule:
		return booking.Date.Weekday() == candidate.Weekday &&
			calendar.ContainsDate(candidate.Term, booking.Date)
	}
	return false
}

// scheduleDayMatches decides whether an existing schedule's weekly day key
// can coincide with the candidate's.
func scheduleDayMatches(schedule Schedule, candidate Candidate, calendar interval.TermCalendar) bool {
	switch candidate.Kind {
	case KindBooking:
		return candidate.Date.Weekday() == schedule.Weekday &&
			calendar.ContainsDate(schedule.Term, candidate.Date)
	case KindSchedule:
		return schedule.Weekday == candidate.Weekday &&
			calendar.TermsOverlap(schedule.Term, candidate.Term)
	}
	return false
}
