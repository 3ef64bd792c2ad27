package events

import (
	"github.com/google/uuid"
)

// Event types emitted by the scheduling core after its transaction commits.
// Collaborators (notification, chat, audit) subscribe; the core never waits
// on them.
const (
	TypeSlotsRegenerated     = "slots_regenerated"
	TypeAppointmentReserved  = "appointment_reserved"
	TypeAppointmentConfirmed = "appointment_confirmed"
	TypeAppointmentCancelled = "appointment_cancelled"
)

type Event struct {
	Type       string
	ProviderID uint

	AppointmentID *uuid.UUID
	Reason        string

	// Metadata carries the event-specific payload, e.g. reconcile counts
	// for TypeSlotsRegenerated.
	Metadata any
}

type RegenerationMetadata struct {
	Deleted      int      `json:"deleted"`
	Created      int      `json:"created"`
	Skipped      int      `json:"skipped"`
	SkippedDates []string `json:"skipped_dates,omitempty"`
}

// Subscriber receives dispatched events. Errors are logged and dropped;
// they never propagate back into the emitting request.
type Subscriber interface {
	Handle(ev Event) error
}
