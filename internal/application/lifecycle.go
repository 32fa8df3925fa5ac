package application

import (
	"fmt"

	"github.com/example/campus-reservations/internal/reservation"
)

// ParseStatus validates a caller supplied status string.
func ParseStatus(value string) (reservation.Status, error) {
	status := reservation.Status(value)
	if !status.Valid() {
		vErr := &ValidationError{}
		vErr.add("status", fmt.Sprintf("unknown status %q", value))
		return "", vErr
	}
	return status, nil
}

// initialStatus decides the state a new booking is created in. Elevated
// creators are granted directly; the conflict guard has already run by the
// time this is consulted.
func initialStatus(principal Principal) reservation.Status {
	if principal.Elevated() {
		return reservation.StatusApproved
	}
	return reservation.StatusPending
}

// transitionOutcome describes how a requested status change is handled.
type transitionOutcome int

const (
	// transitionApply means the change is legal and must be persisted; a
	// transition into approved re-runs the conflict guard first.
	transitionApply transitionOutcome = iota
	// transitionNoop means the booking already holds the target status; the
	// stored record is returned unchanged and no event is emitted.
	transitionNoop
)

// checkTransition applies the lifecycle guard table. Only elevated callers
// may change a booking's status at all, so ownership is not consulted here.
//
//	pending  -> approved   (conflict guard re-runs, excluding self)
//	pending  -> rejected
//	approved -> rejected   (revocation)
//	same     -> same       (idempotent no-op)
//
// Everything else, notably any transition out of rejected, is refused.
func checkTransition(principal Principal, from, to reservation.Status) (transitionOutcome, error) {
	if !principal.Elevated() {
		return 0, ErrUnauthorized
	}
	if from == to {
		return transitionNoop, nil
	}

	switch {
	case from == reservation.StatusPending && to == reservation.StatusApproved:
		return transitionApply, nil
	case from == reservation.StatusPending && to == reservation.StatusRejected:
		return transitionApply, nil
	case from == reservation.StatusApproved && to == reservation.StatusRejected:
		return transitionApply, nil
	}

	return 0, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
}

// canDelete applies the deletion guard: owners remove their own records,
// elevated callers remove any.
func canDelete(principal Principal, ownerID string) bool {
	return principal.Elevated() || (principal.UserID != "" && principal.UserID == ownerID)
}
