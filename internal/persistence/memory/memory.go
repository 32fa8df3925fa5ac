// Package memory provides a map-backed implementation of the persistence
// repositories. It backs unit and race tests and small single-node
// deployments that do not need a durable store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/example/campus-reservations/internal/persistence"
	"github.com/example/campus-reservations/internal/reservation"
)

// Store keeps bookings and schedules in process memory. Each method is
// individually atomic under an internal mutex, matching the contract the
// application layer expects from any store.
type Store struct {
	mu        sync.RWMutex
	bookings  map[string]reservation.Booking
	schedules map[string]reservation.Schedule
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{
		bookings:  make(map[string]reservation.Booking),
		schedules: make(map[string]reservation.Schedule),
	}
}

// CreateBooking stores a new booking.
func (s *Store) CreateBooking(ctx context.Context, booking reservation.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[booking.ID]; ok {
		return persistence.ErrDuplicate
	}
	if !booking.Slot.Valid() {
		return persistence.ErrConstraintViolation
	}

	s.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

// GetBooking retrieves a booking by ID.
func (s *Store) GetBooking(ctx context.Context, id string) (reservation.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.bookings[id]
	if !ok {
		return reservation.Booking{}, persistence.ErrNotFound
	}
	return cloneBooking(booking), nil
}

// UpdateBooking replaces an existing booking.
func (s *Store) UpdateBooking(ctx context.Context, booking reservation.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.bookings[booking.ID]
	if !ok {
		return persistence.ErrNotFound
	}
	if !booking.Slot.Valid() {
		return persistence.ErrConstraintViolation
	}

	booking.CreatedAt = existing.CreatedAt
	s.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

// ListBookings returns bookings matching the filter ordered by date, then
// start time, then ID.
func (s *Store) ListBookings(ctx context.Context, filter persistence.BookingFilter) ([]reservation.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]reservation.Booking, 0)
	for _, booking := range s.bookings {
		if !filter.Matches(booking) {
			continue
		}
		bookings = append(bookings, cloneBooking(booking))
	}

	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date.Before(bookings[j].Date)
		}
		if bookings[i].Slot.Start != bookings[j].Slot.Start {
			return bookings[i].Slot.Start < bookings[j].Slot.Start
		}
		return bookings[i].ID < bookings[j].ID
	})

	return bookings, nil
}

// DeleteBooking removes a booking by ID.
func (s *Store) DeleteBooking(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.bookings, id)
	return nil
}

// CreateSchedule stores a new schedule.
func (s *Store) CreateSchedule(ctx context.Context, schedule reservation.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.schedules[schedule.ID]; ok {
		return persistence.ErrDuplicate
	}
	if !schedule.Slot.Valid() {
		return persistence.ErrConstraintViolation
	}

	s.schedules[schedule.ID] = schedule
	return nil
}

// GetSchedule retrieves a schedule by ID.
func (s *Store) GetSchedule(ctx context.Context, id string) (reservation.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schedule, ok := s.schedules[id]
	if !ok {
		return reservation.Schedule{}, persistence.ErrNotFound
	}
	return schedule, nil
}

// UpdateSchedule replaces an existing schedule. The owner and creation time
// of the stored record are preserved.
func (s *Store) UpdateSchedule(ctx context.Context, schedule reservation.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.schedules[schedule.ID]
	if !ok {
		return persistence.ErrNotFound
	}
	if !schedule.Slot.Valid() {
		return persistence.ErrConstraintViolation
	}

	schedule.OwnerID = existing.OwnerID
	schedule.CreatedAt = existing.CreatedAt
	s.schedules[schedule.ID] = schedule
	return nil
}

// ListSchedules returns schedules matching the filter ordered by weekday,
// then start time, then ID.
func (s *Store) ListSchedules(ctx context.Context, filter persistence.ScheduleFilter) ([]reservation.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schedules := make([]reservation.Schedule, 0)
	for _, schedule := range s.schedules {
		if !filter.Matches(schedule) {
			continue
		}
		schedules = append(schedules, schedule)
	}

	sort.Slice(schedules, func(i, j int) bool {
		if schedules[i].Weekday != schedules[j].Weekday {
			return weekdayOrder(schedules[i].Weekday) < weekdayOrder(schedules[j].Weekday)
		}
		if schedules[i].Slot.Start != schedules[j].Slot.Start {
			return schedules[i].Slot.Start < schedules[j].Slot.Start
		}
		return schedules[i].ID < schedules[j].ID
	})

	return schedules, nil
}

// DeleteSchedule removes a schedule by ID.
func (s *Store) DeleteSchedule(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.schedules[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.schedules, id)
	return nil
}

func cloneBooking(booking reservation.Booking) reservation.Booking {
	if booking.UpdatedAt != nil {
		updated := *booking.UpdatedAt
		booking.UpdatedAt = &updated
	}
	return booking
}

// weekdayOrder lists Monday first, matching how timetables are presented.
func weekdayOrder(day time.Weekday) int {
	return (int(day) + 6) % 7
}
