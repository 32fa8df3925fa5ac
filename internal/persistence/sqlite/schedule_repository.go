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

const scheduleColumns = "id, room_id, owner_id, course_code, course_name, weekday, start_minute, end_minute, term, created_at, updated_at"

// CreateSchedule inserts a new schedule row.
func (d *DB) CreateSchedule(ctx context.Context, schedule reservation.Schedule) error {
	query := `INSERT INTO schedules (` + scheduleColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := d.db.ExecContext(ctx, query,
		schedule.ID,
		schedule.RoomID,
		schedule.OwnerID,
		schedule.CourseCode,
		schedule.CourseName,
		int(schedule.Weekday),
		int(schedule.Slot.Start),
		int(schedule.Slot.End),
		schedule.Term,
		schedule.CreatedAt.UTC().Format(time.RFC3339),
		schedule.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return mapError(err)
}

// GetSchedule retrieves a schedule by ID.
func (d *DB) GetSchedule(ctx context.Context, id string) (reservation.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = ?`
	return scanSchedule(d.db.QueryRowContext(ctx, query, id))
}

// UpdateSchedule replaces a schedule row. Ownership and the creation
// timestamp are preserved from the stored record.
func (d *DB) UpdateSchedule(ctx context.Context, schedule reservation.Schedule) error {
	return d.withTransaction(ctx, func(tx *sql.Tx) error {
		var ownerID, createdAt string
		err := tx.QueryRowContext(ctx,
			`SELECT owner_id, created_at FROM schedules WHERE id = ?`, schedule.ID).
			Scan(&ownerID, &createdAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return persistence.ErrNotFound
			}
			return mapError(err)
		}

		_, err = tx.ExecContext(ctx, `UPDATE schedules
			SET room_id = ?, course_code = ?, course_name = ?, weekday = ?, start_minute = ?, end_minute = ?, term = ?, updated_at = ?
			WHERE id = ?`,
			schedule.RoomID,
			schedule.CourseCode,
			schedule.CourseName,
			int(schedule.Weekday),
			int(schedule.Slot.Start),
			int(schedule.Slot.End),
			schedule.Term,
			schedule.UpdatedAt.UTC().Format(time.RFC3339),
			schedule.ID,
		)
		return mapError(err)
	})
}

// ListSchedules returns schedules matching the filter ordered Monday-first by
// weekday, then start time, then ID.
func (d *DB) ListSchedules(ctx context.Context, filter persistence.ScheduleFilter) ([]reservation.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules`

	conditions := make([]string, 0, 3)
	args := make([]any, 0, 3)
	if filter.RoomID != "" {
		conditions = append(conditions, "room_id = ?")
		args = append(args, filter.RoomID)
	}
	if filter.Term != "" {
		conditions = append(conditions, "term = ?")
		args = append(args, filter.Term)
	}
	if filter.Weekday != nil {
		conditions = append(conditions, "weekday = ?")
		args = append(args, int(*filter.Weekday))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY (weekday + 6) % 7, start_minute, id"

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	schedules := make([]reservation.Schedule, 0)
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return schedules, nil
}

// DeleteSchedule removes a schedule by ID.
func (d *DB) DeleteSchedule(ctx context.Context, id string) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
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

func scanSchedule(row rowScanner) (reservation.Schedule, error) {
	var (
		schedule    reservation.Schedule
		weekday     int
		startMinute int
		endMinute   int
		createdAt   string
		updatedAt   string
	)

	err := row.Scan(
		&schedule.ID,
		&schedule.RoomID,
		&schedule.OwnerID,
		&schedule.CourseCode,
		&schedule.CourseName,
		&weekday,
		&startMinute,
		&endMinute,
		&schedule.Term,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reservation.Schedule{}, persistence.ErrNotFound
		}
		return reservation.Schedule{}, mapError(err)
	}

	schedule.Weekday = time.Weekday(weekday)
	schedule.Slot = interval.Span{Start: interval.TimeOfDay(startMinute), End: interval.TimeOfDay(endMinute)}

	schedule.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return reservation.Schedule{}, fmt.Errorf("sqlite: schedule %s created_at: %w", schedule.ID, err)
	}
	schedule.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return reservation.Schedule{}, fmt.Errorf("sqlite: schedule %s updated_at: %w", schedule.ID, err)
	}

	return schedule, nil
}
