package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/campus-reservations/internal/interval"
	"github.com/example/campus-reservations/internal/notify"
	"github.com/example/campus-reservations/internal/persistence"
	"github.com/example/campus-reservations/internal/reservation"
)

// BookingService orchestrates the ad-hoc reservation lifecycle: creation
// under the conflict guard, caller-scoped listing, status transitions, and
// deletion.
type BookingService struct {
	store       persistence.Store
	calendar    interval.TermCalendar
	notifier    notify.Notifier
	locks       *RoomLocks
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewBookingService wires dependencies for booking operations. The lock
// table must be shared with the schedule service so both serialize on the
// same rooms.
func NewBookingService(store persistence.Store, calendar interval.TermCalendar, notifier notify.Notifier, locks *RoomLocks, idGenerator func() string, now func() time.Time, logger *slog.Logger) *BookingService {
	if locks == nil {
		locks = NewRoomLocks()
	}
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &BookingService{
		store:       store,
		calendar:    calendar,
		notifier:    notifier,
		locks:       locks,
		idGenerator: idGenerator,
		now:         now,
		logger:      logger,
	}
}

// CreateBooking validates the request, runs the conflict guard inside the
// room's critical section, and persists the new booking. Elevated creators
// are granted directly; everyone else starts pending.
func (s *BookingService) CreateBooking(ctx context.Context, params CreateBookingParams) (reservation.Booking, error) {
	if s == nil || s.store == nil {
		return reservation.Booking{}, fmt.Errorf("booking service not configured")
	}

	principal := params.Principal
	input := params.Input

	vErr := &ValidationError{}
	if strings.TrimSpace(input.RoomID) == "" {
		vErr.add("room_id", "room is required")
	}
	if principal.UserID == "" {
		vErr.add("requester", "requester is required")
	}
	if input.Date.IsZero() {
		vErr.add("date", "date is required")
	}
	if !input.Slot.Valid() {
		vErr.add("time", "start must be before end")
	}
	if vErr.HasErrors() {
		return reservation.Booking{}, vErr
	}

	logger := serviceLogger(ctx, s.logger, "booking", "create", "room_id", input.RoomID)

	unlock := s.locks.Lock(input.RoomID)
	defer unlock()

	var booking reservation.Booking
	err := withStoreRetry(ctx, func() error {
		candidate := reservation.BookingCandidate(input.RoomID, input.Date, input.Slot)
		if conflict, err := s.findConflict(ctx, candidate); err != nil {
			return err
		} else if conflict != nil {
			return &ConflictError{With: *conflict}
		}

		booking = reservation.Booking{
			ID:          s.idGenerator(),
			RoomID:      input.RoomID,
			RequesterID: principal.UserID,
			Purpose:     strings.TrimSpace(input.Purpose),
			Date:        input.Date,
			Slot:        input.Slot,
			Status:      initialStatus(principal),
			CreatedAt:   s.now(),
		}
		return s.store.CreateBooking(ctx, booking)
	})
	if err != nil {
		logger.ErrorContext(ctx, "create booking failed", "error", err, "error_kind", ErrorKind(err))
		return reservation.Booking{}, err
	}

	logger.InfoContext(ctx, "booking created", "booking_id", booking.ID, "status", string(booking.Status))
	s.emit(ctx, logger, notify.StatusEvent{
		ReservationID: booking.ID,
		Kind:          reservation.KindBooking,
		RoomID:        booking.RoomID,
		OwnerID:       booking.RequesterID,
		NewStatus:     booking.Status,
		OccurredAt:    s.now(),
	})

	return booking, nil
}

// ListBookings enumerates bookings visible to the caller: ordinary callers
// see only their own, elevated callers see all.
func (s *BookingService) ListBookings(ctx context.Context, params ListBookingsParams) ([]reservation.Booking, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("booking service not configured")
	}

	filter := persistence.BookingFilter{
		RoomID: params.RoomID,
		Date:   params.Date,
	}
	if !params.Principal.Elevated() {
		filter.RequesterID = params.Principal.UserID
	}

	return s.store.ListBookings(ctx, filter)
}

// GetBooking loads one booking, applying the same visibility rule as
// ListBookings.
func (s *BookingService) GetBooking(ctx context.Context, principal Principal, id string) (reservation.Booking, error) {
	if s == nil || s.store == nil {
		return reservation.Booking{}, fmt.Errorf("booking service not configured")
	}

	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return reservation.Booking{}, mapStoreError(err)
	}
	if !principal.Elevated() && !booking.OwnedBy(principal.UserID) {
		return reservation.Booking{}, ErrNotFound
	}
	return booking, nil
}

// TransitionBooking applies the lifecycle guard table to a stored booking.
// Transitions into approved re-run the conflict guard, excluding the booking
// itself, inside the room's critical section.
func (s *BookingService) TransitionBooking(ctx context.Context, params TransitionBookingParams) (reservation.Booking, error) {
	if s == nil || s.store == nil {
		return reservation.Booking{}, fmt.Errorf("booking service not configured")
	}

	target, err := ParseStatus(params.Target)
	if err != nil {
		return reservation.Booking{}, err
	}

	existing, err := s.store.GetBooking(ctx, params.BookingID)
	if err != nil {
		return reservation.Booking{}, mapStoreError(err)
	}

	logger := serviceLogger(ctx, s.logger, "booking", "transition",
		"booking_id", params.BookingID, "target", string(target))

	unlock := s.locks.Lock(existing.RoomID)
	defer unlock()

	var (
		updated  reservation.Booking
		previous reservation.Status
		applied  bool
	)
	err = withStoreRetry(ctx, func() error {
		// Fresh read inside the critical section; the record may have moved
		// since the unguarded load above.
		booking, err := s.store.GetBooking(ctx, params.BookingID)
		if err != nil {
			return mapStoreError(err)
		}

		outcome, err := checkTransition(params.Principal, booking.Status, target)
		if err != nil {
			return err
		}
		if outcome == transitionNoop {
			updated = booking
			applied = false
			return nil
		}

		if target == reservation.StatusApproved {
			candidate := reservation.BookingCandidate(booking.RoomID, booking.Date, booking.Slot).
				WithExclusion(booking.ID)
			if conflict, err := s.findConflict(ctx, candidate); err != nil {
				return err
			} else if conflict != nil {
				return &ConflictError{With: *conflict}
			}
		}

		previous = booking.Status
		now := s.now()
		booking.Status = target
		booking.UpdatedAt = &now
		if err := s.store.UpdateBooking(ctx, booking); err != nil {
			return mapStoreError(err)
		}

		updated = booking
		applied = true
		return nil
	})
	if err != nil {
		logger.ErrorContext(ctx, "transition failed", "error", err, "error_kind", ErrorKind(err))
		return reservation.Booking{}, err
	}

	if applied {
		logger.InfoContext(ctx, "booking transitioned", "from", string(previous), "to", string(updated.Status))
		s.emit(ctx, logger, notify.StatusEvent{
			ReservationID:  updated.ID,
			Kind:           reservation.KindBooking,
			RoomID:         updated.RoomID,
			OwnerID:        updated.RequesterID,
			PreviousStatus: previous,
			NewStatus:      updated.Status,
			OccurredAt:     s.now(),
		})
	}

	return updated, nil
}

// DeleteBooking removes a booking. Owners remove their own records, elevated
// callers remove any.
func (s *BookingService) DeleteBooking(ctx context.Context, principal Principal, id string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("booking service not configured")
	}

	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return mapStoreError(err)
	}
	if !canDelete(principal, booking.RequesterID) {
		return ErrUnauthorized
	}

	if err := s.store.DeleteBooking(ctx, id); err != nil {
		return mapStoreError(err)
	}

	serviceLogger(ctx, s.logger, "booking", "delete", "booking_id", id).
		InfoContext(ctx, "booking deleted")
	return nil
}

func (s *BookingService) findConflict(ctx context.Context, candidate reservation.Candidate) (*reservation.Conflict, error) {
	return findConflict(ctx, s.store, s.calendar, candidate)
}

// emit delivers a status event best-effort. The write has already committed,
// so a delivery failure is logged with the payload and never surfaced.
func (s *BookingService) emit(ctx context.Context, logger *slog.Logger, event notify.StatusEvent) {
	publishStatusEvent(ctx, s.notifier, logger, event)
}
