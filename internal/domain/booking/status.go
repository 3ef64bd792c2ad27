package booking

import "github.com/voluntree/scheduler/internal/apperr"

// ===============================
// Appointment Status
// ===============================

// An appointment moves Pending -> Confirmed or Pending -> Cancelled, and a
// confirmed appointment may still be cancelled after the fact. "Available"
// is never stored: it is the absence of an active appointment on a slot.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Active statuses protect their slot from deletion and rebooking.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ===============================
// Transitions
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return apperr.Conflict("invalid_state", "Only a pending appointment can be confirmed.")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return apperr.Conflict("invalid_state", "The appointment is already cancelled.")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
