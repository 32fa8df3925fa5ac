package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/example/campus-reservations/internal/interval"
	"github.com/example/campus-reservations/internal/notify"
	"github.com/example/campus-reservations/internal/persistence"
	"github.com/example/campus-reservations/internal/reservation"
)

// findConflict loads the grant-equivalent set for the candidate's room and
// scans it. Only approved bookings are fetched; pending requests never block
// a slot. Must run inside the room's critical section when the result gates
// a write.
func findConflict(ctx context.Context, store persistence.Store, calendar interval.TermCalendar, candidate reservation.Candidate) (*reservation.Conflict, error) {
	bookingFilter := persistence.BookingFilter{
		RoomID:   candidate.RoomID,
		Statuses: []reservation.Status{reservation.StatusApproved},
	}
	if candidate.Kind == reservation.KindBooking {
		date := candidate.Date
		bookingFilter.Date = &date
	}
	bookings, err := store.ListBookings(ctx, bookingFilter)
	if err != nil {
		return nil, mapStoreError(err)
	}

	weekday := candidate.Weekday
	if candidate.Kind == reservation.KindBooking {
		weekday = candidate.Date.Weekday()
	}
	schedules, err := store.ListSchedules(ctx, persistence.ScheduleFilter{
		RoomID:  candidate.RoomID,
		Weekday: &weekday,
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	return reservation.FindConflict(bookings, schedules, candidate, calendar), nil
}

// publishStatusEvent delivers a status event best-effort: the originating
// write has already committed, so failures are logged, never returned.
func publishStatusEvent(ctx context.Context, notifier notify.Notifier, logger *slog.Logger, event notify.StatusEvent) {
	if notifier == nil {
		return
	}
	if err := notifier.PublishStatusChange(ctx, event); err != nil {
		logger.ErrorContext(ctx, "failed to publish status event",
			"error", err,
			"reservation_id", event.ReservationID,
			"new_status", string(event.NewStatus),
		)
	}
}

// mapStoreError normalizes persistence sentinels at the service boundary.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
