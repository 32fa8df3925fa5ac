// Package notify carries reservation state changes to the notification
// collaborator. The engine emits an event after every successful create and
// transition; delivery is best-effort and never fails the originating
// request.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/example/campus-reservations/internal/reservation"
)

// StatusEvent describes a reservation state change.
type StatusEvent struct {
	ReservationID  string             `json:"reservation_id"`
	Kind           reservation.Kind   `json:"kind"`
	RoomID         string             `json:"room_id"`
	OwnerID        string             `json:"owner_id"`
	PreviousStatus reservation.Status `json:"previous_status,omitempty"`
	NewStatus      reservation.Status `json:"new_status"`
	OccurredAt     time.Time          `json:"occurred_at"`
}

// Notifier delivers status events to the notification collaborator.
type Notifier interface {
	PublishStatusChange(ctx context.Context, event StatusEvent) error
}

// LogNotifier records events on the process log. It is the fallback when no
// broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier constructs a notifier writing to the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// PublishStatusChange implements Notifier.
func (n *LogNotifier) PublishStatusChange(ctx context.Context, event StatusEvent) error {
	n.logger.InfoContext(ctx, "reservation status changed",
		"reservation_id", event.ReservationID,
		"kind", string(event.Kind),
		"room_id", event.RoomID,
		"owner_id", event.OwnerID,
		"previous_status", string(event.PreviousStatus),
		"new_status", string(event.NewStatus),
	)
	return nil
}
