// Package persistence declares the typed repository contracts the reservation
// engine persists through. Every write is atomic on its own; the application
// layer supplies the per-room critical section on top.
package persistence

import (
	"context"
	"time"

	"github.com/example/campus-reservations/internal/interval"
	"github.com/example/campus-reservations/internal/reservation"
)

// BookingFilter narrows booking queries.
type BookingFilter struct {
	RoomID      string
	RequesterID string
	Date        *interval.Date
	Statuses    []reservation.Status
}

// Matches reports whether a booking satisfies the filter.
func (f BookingFilter) Matches(b reservation.Booking) bool {
	if f.RoomID != "" && b.RoomID != f.RoomID {
		return false
	}
	if f.RequesterID != "" && b.RequesterID != f.RequesterID {
		return false
	}
	if f.Date != nil && b.Date != *f.Date {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, status := range f.Statuses {
			if b.Status == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ScheduleFilter narrows schedule queries.
type ScheduleFilter struct {
	RoomID  string
	Term    string
	Weekday *time.Weekday
}

// Matches reports whether a schedule satisfies the filter.
func (f ScheduleFilter) Matches(s reservation.Schedule) bool {
	if f.RoomID != "" && s.RoomID != f.RoomID {
		return false
	}
	if f.Term != "" && s.Term != f.Term {
		return false
	}
	if f.Weekday != nil && s.Weekday != *f.Weekday {
		return false
	}
	return true
}

// BookingRepository stores ad-hoc bookings.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking reservation.Booking) error
	GetBooking(ctx context.Context, id string) (reservation.Booking, error)
	UpdateBooking(ctx context.Context, booking reservation.Booking) error
	ListBookings(ctx context.Context, filter BookingFilter) ([]reservation.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

// ScheduleRepository stores recurring weekly schedules.
type ScheduleRepository interface {
	CreateSchedule(ctx context.Context, schedule reservation.Schedule) error
	GetSchedule(ctx context.Context, id string) (reservation.Schedule, error)
	UpdateSchedule(ctx context.Context, schedule reservation.Schedule) error
	ListSchedules(ctx context.Context, filter ScheduleFilter) ([]reservation.Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error
}

// Store bundles the repositories a reservation service persists through.
type Store interface {
	BookingRepository
	ScheduleRepository
}
