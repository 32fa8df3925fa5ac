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

// ScheduleService manages recurring weekly allocations. Schedules have no
// approval workflow: an elevated caller creates one and its existence is the
// grant, so creation and replacement both run under the conflict guard.
type ScheduleService struct {
	store       persistence.Store
	calendar    interval.TermCalendar
	notifier    notify.Notifier
	locks       *RoomLocks
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewScheduleService wires dependencies for schedule operations. The lock
// table must be the same instance the booking service uses.
func NewScheduleService(store persistence.Store, calendar interval.TermCalendar, notifier notify.Notifier, locks *RoomLocks, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ScheduleService {
	if locks == nil {
		locks = NewRoomLocks()
	}
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ScheduleService{
		store:       store,
		calendar:    calendar,
		notifier:    notifier,
		locks:       locks,
		idGenerator: idGenerator,
		now:         now,
		logger:      logger,
	}
}

// CreateSchedule validates the request and persists a new granted schedule.
// Only elevated callers may allocate rooms on a recurring basis.
func (s *ScheduleService) CreateSchedule(ctx context.Context, params CreateScheduleParams) (reservation.Schedule, error) {
	if s == nil || s.store == nil {
		return reservation.Schedule{}, fmt.Errorf("schedule service not configured")
	}

	principal := params.Principal
	if !principal.Elevated() {
		return reservation.Schedule{}, ErrUnauthorized
	}

	input := params.Input
	if vErr := validateScheduleInput(input); vErr.HasErrors() {
		return reservation.Schedule{}, vErr
	}

	logger := serviceLogger(ctx, s.logger, "schedule", "create", "room_id", input.RoomID)

	unlock := s.locks.Lock(input.RoomID)
	defer unlock()

	var schedule reservation.Schedule
	err := withStoreRetry(ctx, func() error {
		candidate := reservation.ScheduleCandidate(input.RoomID, input.Weekday, input.Term, input.Slot)
		if conflict, err := findConflict(ctx, s.store, s.calendar, candidate); err != nil {
			return err
		} else if conflict != nil {
			return &ConflictError{With: *conflict}
		}

		createdAt := s.now()
		schedule = reservation.Schedule{
			ID:         s.idGenerator(),
			RoomID:     input.RoomID,
			OwnerID:    principal.UserID,
			CourseCode: strings.TrimSpace(input.CourseCode),
			CourseName: strings.TrimSpace(input.CourseName),
			Weekday:    input.Weekday,
			Slot:       input.Slot,
			Term:       input.Term,
			CreatedAt:  createdAt,
			UpdatedAt:  createdAt,
		}
		return s.store.CreateSchedule(ctx, schedule)
	})
	if err != nil {
		logger.ErrorContext(ctx, "create schedule failed", "error", err, "error_kind", ErrorKind(err))
		return reservation.Schedule{}, err
	}

	logger.InfoContext(ctx, "schedule created", "schedule_id", schedule.ID, "term", schedule.Term)
	publishStatusEvent(ctx, s.notifier, logger, notify.StatusEvent{
		ReservationID: schedule.ID,
		Kind:          reservation.KindSchedule,
		RoomID:        schedule.RoomID,
		OwnerID:       schedule.OwnerID,
		NewStatus:     reservation.StatusApproved,
		OccurredAt:    s.now(),
	})

	return schedule, nil
}

// ListSchedules returns schedules matching the optional filters. Schedule
// visibility is unrestricted: every authenticated caller may read the full
// timetable.
func (s *ScheduleService) ListSchedules(ctx context.Context, roomID, term string) ([]reservation.Schedule, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("schedule service not configured")
	}
	return s.store.ListSchedules(ctx, persistence.ScheduleFilter{RoomID: roomID, Term: term})
}

// UpdateSchedule replaces a schedule wholesale after re-running the conflict
// guard with the schedule itself excluded. Owners and elevated callers may
// replace.
func (s *ScheduleService) UpdateSchedule(ctx context.Context, params UpdateScheduleParams) (reservation.Schedule, error) {
	if s == nil || s.store == nil {
		return reservation.Schedule{}, fmt.Errorf("schedule service not configured")
	}

	existing, err := s.store.GetSchedule(ctx, params.ScheduleID)
	if err != nil {
		return reservation.Schedule{}, mapStoreError(err)
	}

	principal := params.Principal
	if !principal.Elevated() && !existing.OwnedBy(principal.UserID) {
		return reservation.Schedule{}, ErrUnauthorized
	}

	input := params.Input
	if vErr := validateScheduleInput(input); vErr.HasErrors() {
		return reservation.Schedule{}, vErr
	}

	logger := serviceLogger(ctx, s.logger, "schedule", "update", "schedule_id", params.ScheduleID)

	unlock := s.locks.Lock(input.RoomID)
	defer unlock()

	var updated reservation.Schedule
	err = withStoreRetry(ctx, func() error {
		candidate := reservation.ScheduleCandidate(input.RoomID, input.Weekday, input.Term, input.Slot).
			WithExclusion(params.ScheduleID)
		if conflict, err := findConflict(ctx, s.store, s.calendar, candidate); err != nil {
			return err
		} else if conflict != nil {
			return &ConflictError{With: *conflict}
		}

		updated = existing
		updated.RoomID = input.RoomID
		updated.CourseCode = strings.TrimSpace(input.CourseCode)
		updated.CourseName = strings.TrimSpace(input.CourseName)
		updated.Weekday = input.Weekday
		updated.Slot = input.Slot
		updated.Term = input.Term
		updated.UpdatedAt = s.now()
		return mapStoreError(s.store.UpdateSchedule(ctx, updated))
	})
	if err != nil {
		logger.ErrorContext(ctx, "update schedule failed", "error", err, "error_kind", ErrorKind(err))
		return reservation.Schedule{}, err
	}

	logger.InfoContext(ctx, "schedule replaced")
	return updated, nil
}

// DeleteSchedule removes a schedule. Owners remove their own, elevated
// callers remove any.
func (s *ScheduleService) DeleteSchedule(ctx context.Context, principal Principal, id string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("schedule service not configured")
	}

	schedule, err := s.store.GetSchedule(ctx, id)
	if err != nil {
		return mapStoreError(err)
	}
	if !canDelete(principal, schedule.OwnerID) {
		return ErrUnauthorized
	}

	if err := s.store.DeleteSchedule(ctx, id); err != nil {
		return mapStoreError(err)
	}

	serviceLogger(ctx, s.logger, "schedule", "delete", "schedule_id", id).
		InfoContext(ctx, "schedule deleted")
	return nil
}

func validateScheduleInput(input ScheduleInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.RoomID) == "" {
		vErr.add("room_id", "room is required")
	}
	if input.Weekday < time.Sunday || input.Weekday > time.Saturday {
		vErr.add("weekday", "weekday must be Sunday through Saturday")
	}
	if !input.Slot.Valid() {
		vErr.add("time", "start must be before end")
	}
	if strings.TrimSpace(input.Term) == "" {
		vErr.add("term", "term is required")
	}
	return vErr
}
