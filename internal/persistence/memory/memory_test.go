package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/campus-reservations/internal/interval"
	"github.com/example/campus-reservations/internal/persistence"
	"github.com/example/campus-reservations/internal/reservation"
	"github.com/example/campus-reservations/internal/testfixtures"
)

func TestBookingCRUD(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()
	booking := testfixtures.NewBooking()

	if err := store.CreateBooking(ctx, booking); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := store.CreateBooking(ctx, booking); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("duplicate create: error = %v, want ErrDuplicate", err)
	}

	loaded, err := store.GetBooking(ctx, booking.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded.RoomID != booking.RoomID || loaded.Status != booking.Status {
		t.Fatalf("loaded booking differs: %+v", loaded)
	}

	updatedAt := booking.CreatedAt.Add(time.Hour)
	loaded.Status = reservation.StatusRejected
	loaded.UpdatedAt = &updatedAt
	if err := store.UpdateBooking(ctx, loaded); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	reloaded, err := store.GetBooking(ctx, booking.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if reloaded.Status != reservation.StatusRejected || reloaded.UpdatedAt == nil {
		t.Fatalf("update not applied: %+v", reloaded)
	}
	if !reloaded.CreatedAt.Equal(booking.CreatedAt) {
		t.Fatalf("creation time must survive updates: %v", reloaded.CreatedAt)
	}

	if err := store.DeleteBooking(ctx, booking.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.GetBooking(ctx, booking.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("get after delete: error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteBooking(ctx, booking.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("double delete: error = %v, want ErrNotFound", err)
	}
}

func TestBookingInvalidSlotRejected(t *testing.T) {
	t.Parallel()

	store := NewStore()
	bad := testfixtures.NewBooking()
	bad.Slot.End = bad.Slot.Start

	if err := store.CreateBooking(context.Background(), bad); !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("error = %v, want ErrConstraintViolation", err)
	}
}

func TestListBookingsFilterAndOrder(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()

	monday := testfixtures.ReferenceDate()
	tuesday, err := interval.ParseDate("2025-01-07")
	if err != nil {
		t.Fatalf("bad date: %v", err)
	}

	afternoon := interval.Span{Start: 13 * 60, End: 14 * 60}
	seed := []reservation.Booking{
		testfixtures.NewBooking(
			testfixtures.WithBookingID("bk-late"),
			testfixtures.WithBookingDate(monday),
			testfixtures.WithBookingSlot(afternoon),
		),
		testfixtures.NewBooking(
			testfixtures.WithBookingID("bk-early"),
			testfixtures.WithBookingDate(monday),
		),
		testfixtures.NewBooking(
			testfixtures.WithBookingID("bk-next-day"),
			testfixtures.WithBookingDate(tuesday),
			testfixtures.WithBookingStatus(reservation.StatusPending),
		),
		testfixtures.NewBooking(
			testfixtures.WithBookingID("bk-other-room"),
			testfixtures.WithBookingRoom("room-202"),
			testfixtures.WithBookingRequester("student-2"),
		),
	}
	for _, booking := range seed {
		if err := store.CreateBooking(ctx, booking); err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
	}

	t.Run("orders by date then start then id", func(t *testing.T) {
		t.Parallel()

		got, err := store.ListBookings(ctx, persistence.BookingFilter{RoomID: "room-101"})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		wantOrder := []string{"bk-early", "bk-late", "bk-next-day"}
		if len(got) != len(wantOrder) {
			t.Fatalf("expected %d bookings, got %d", len(wantOrder), len(got))
		}
		for i, id := range wantOrder {
			if got[i].ID != id {
				t.Fatalf("position %d = %s, want %s", i, got[i].ID, id)
			}
		}
	})

	t.Run("filters by date and status", func(t *testing.T) {
		t.Parallel()

		got, err := store.ListBookings(ctx, persistence.BookingFilter{
			RoomID:   "room-101",
			Date:     &monday,
			Statuses: []reservation.Status{reservation.StatusApproved},
		})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 approved monday bookings, got %d", len(got))
		}
	})

	t.Run("filters by requester", func(t *testing.T) {
		t.Parallel()

		got, err := store.ListBookings(ctx, persistence.BookingFilter{RequesterID: "student-2"})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != "bk-other-room" {
			t.Fatalf("unexpected result: %+v", got)
		}
	})
}

func TestScheduleCRUD(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()
	schedule := testfixtures.NewSchedule()

	if err := store.CreateSchedule(ctx, schedule); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := store.CreateSchedule(ctx, schedule); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("duplicate create: error = %v, want ErrDuplicate", err)
	}

	replacement := schedule
	replacement.OwnerID = "someone-else"
	replacement.CreatedAt = schedule.CreatedAt.Add(time.Hour)
	replacement.RoomID = "room-202"
	if err := store.UpdateSchedule(ctx, replacement); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	loaded, err := store.GetSchedule(ctx, schedule.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded.RoomID != "room-202" {
		t.Fatalf("update not applied: %+v", loaded)
	}
	// Identity fields of the stored record always win.
	if loaded.OwnerID != schedule.OwnerID || !loaded.CreatedAt.Equal(schedule.CreatedAt) {
		t.Fatalf("owner and creation time must survive updates: %+v", loaded)
	}

	if err := store.DeleteSchedule(ctx, schedule.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.GetSchedule(ctx, schedule.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("get after delete: error = %v, want ErrNotFound", err)
	}
}

func TestListSchedulesFilterAndOrder(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()

	seed := []reservation.Schedule{
		testfixtures.NewSchedule(
			testfixtures.WithScheduleID("sch-wed"),
			testfixtures.WithScheduleWeekday(time.Wednesday),
		),
		testfixtures.NewSchedule(
			testfixtures.WithScheduleID("sch-mon"),
			testfixtures.WithScheduleWeekday(time.Monday),
		),
		testfixtures.NewSchedule(
			testfixtures.WithScheduleID("sch-sun"),
			testfixtures.WithScheduleWeekday(time.Sunday),
		),
		testfixtures.NewSchedule(
			testfixtures.WithScheduleID("sch-fall"),
			testfixtures.WithScheduleRoom("room-202"),
			testfixtures.WithScheduleTerm("Fall 2025"),
		),
	}
	for _, schedule := range seed {
		if err := store.CreateSchedule(ctx, schedule); err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
	}

	t.Run("orders monday first and sunday last", func(t *testing.T) {
		t.Parallel()

		got, err := store.ListSchedules(ctx, persistence.ScheduleFilter{RoomID: "room-101"})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		wantOrder := []string{"sch-mon", "sch-wed", "sch-sun"}
		if len(got) != len(wantOrder) {
			t.Fatalf("expected %d schedules, got %d", len(wantOrder), len(got))
		}
		for i, id := range wantOrder {
			if got[i].ID != id {
				t.Fatalf("position %d = %s, want %s", i, got[i].ID, id)
			}
		}
	})

	t.Run("filters by weekday", func(t *testing.T) {
		t.Parallel()

		monday := time.Monday
		got, err := store.ListSchedules(ctx, persistence.ScheduleFilter{
			RoomID:  "room-101",
			Weekday: &monday,
		})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != "sch-mon" {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("filters by term", func(t *testing.T) {
		t.Parallel()

		got, err := store.ListSchedules(ctx, persistence.ScheduleFilter{Term: "Fall 2025"})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != "sch-fall" {
			t.Fatalf("unexpected result: %+v", got)
		}
	})
}

func TestBookingIsolation(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()
	booking := testfixtures.NewBooking()
	if err := store.CreateBooking(ctx, booking); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	loaded, err := store.GetBooking(ctx, booking.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	// Mutating a returned record must not leak into the store.
	loaded.Status = reservation.StatusRejected
	stamp := time.Now()
	loaded.UpdatedAt = &stamp

	reloaded, err := store.GetBooking(ctx, booking.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if reloaded.Status != booking.Status || reloaded.UpdatedAt != nil {
		t.Fatalf("store leaked caller mutations: %+v", reloaded)
	}
}
