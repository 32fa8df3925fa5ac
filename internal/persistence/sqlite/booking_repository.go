package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/campus-reservations/internal/interval"
	"github.com/example/campus-reservations/internal/persistence"
	"github.com/example/campus-reservations/internal/reservation"
)

const bookingColumns = "id, room_id, requester_id, purpose, date, start_minute, end_minute, status, created_at, updated_at"

// CreateBooking inserts a new booking row.
func (d *DB) CreateBooking(ctx context.Context, booking reservation.Booking) error {
	query := `INSERT INTO bookings (` + bookingColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var updatedAt sql.NullString
	if booking.UpdatedAt != nil {
		updatedAt = sql.NullString{String: booking.UpdatedAt.UTC().Format(time.RFC3339), Valid: true}
	}

	_, err := d.db.ExecContext(ctx, query,
		booking.ID,
		booking.RoomID,
		booking.RequesterID,
		booking.Purpose,
		booking.Date.String(),
		int(booking.Slot.Start),
		int(booking.Slot.End),
		string(booking.Status),
		booking.CreatedAt.UTC().Format(time.RFC3339),
		updatedAt,
	)
	return mapError(err)
}

// GetBooking retrieves a booking by ID.
func (d *DB) GetBooking(ctx context.Context, id string) (reservation.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	return scanBooking(d.db.QueryRowContext(ctx, query, id))
}

// UpdateBooking replaces a booking row. The creation timestamp is never
// rewritten.
func (d *DB) UpdateBooking(ctx context.Context, booking reservation.Booking) error {
	query := `UPDATE bookings
		SET room_id = ?, requester_id = ?, purpose = ?, date = ?, start_minute = ?, end_minute = ?, status = ?, updated_at = ?
		WHERE id = ?`

	var updatedAt sql.NullString
	if booking.UpdatedAt != nil {
		updatedAt = sql.NullString{String: booking.UpdatedAt.UTC().Format(time.RFC3339), Valid: true}
	}

	result, err := d.db.ExecContext(ctx, query,
		booking.RoomID,
		booking.RequesterID,
		booking.Purpose,
		booking.Date.String(),
		int(booking.Slot.Start),
		int(booking.Slot.End),
		string(booking.Status),
		updatedAt,
		booking.ID,
	)
	if err != nil {
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// ListBookings returns bookings matching the filter ordered by date, start
// time, then ID.
func (d *DB) ListBookings(ctx context.Context, filter persistence.BookingFilter) ([]reservation.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`

	conditions := make([]string, 0, 4)
	args := make([]any, 0, 4)
	if filter.RoomID != "" {
		conditions = append(conditions, "room_id = ?")
		args = append(args, filter.RoomID)
	}
	if filter.RequesterID != "" {
		conditions = append(conditions, "requester_id = ?")
		args = append(args, filter.RequesterID)
	}
	if filter.Date != nil {
		conditions = append(conditions, "date = ?")
		args = append(args, filter.Date.String())
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			placeholders[i] = "?"
			args = append(args, string(status))
		}
		conditions = append(conditions, "status IN ("+strings.Join(placeholders, ", ")+")")
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date, start_minute, id"

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	bookings := make([]reservation.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return bookings, nil
}

// DeleteBooking removes a booking by ID.
func (d *DB) DeleteBooking(ctx context.Context, id string) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (reservation.Booking, error) {
	var (
		booking     reservation.Booking
		date        string
		startMinute int
		endMinute   int
		status      string
		createdAt   string
		updatedAt   sql.NullString
	)

	err := row.Scan(
		&booking.ID,
		&booking.RoomID,
		&booking.RequesterID,
		&booking.Purpose,
		&date,
		&startMinute,
		&endMinute,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reservation.Booking{}, persistence.ErrNotFound
		}
		return reservation.Booking{}, mapError(err)
	}

	booking.Date, err = interval.ParseDate(date)
	if err != nil {
		return reservation.Booking{}, fmt.Errorf("sqlite: booking %s: %w", booking.ID, err)
	}
	booking.Slot = interval.Span{Start: interval.TimeOfDay(startMinute), End: interval.TimeOfDay(endMinute)}
	booking.Status = reservation.Status(status)

	booking.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return reservation.Booking{}, fmt.Errorf("sqlite: booking %s created_at: %w", booking.ID, err)
	}
	if updatedAt.Valid {
		parsed, err := time.Parse(time.RFC3339, updatedAt.String)
		if err != nil {
			return reservation.Booking{}, fmt.Errorf("sqlite: booking %s updated_at: %w", booking.ID, err)
		}
		booking.UpdatedAt = &parsed
	}

	return booking, nil
}
