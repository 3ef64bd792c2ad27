package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/voluntree/scheduler/internal/apperr"
	domainbooking "github.com/voluntree/scheduler/internal/domain/booking"
	domain "github.com/voluntree/scheduler/internal/domain/schedule"
	"github.com/voluntree/scheduler/internal/events"
	"github.com/voluntree/scheduler/internal/locker"
	"github.com/voluntree/scheduler/internal/models"
)

type ReserveInput struct {
	SlotID        uuid.UUID
	ProviderID    uint
	RequesterID   string
	RequesterName string
}

// Reserve turns an available slot into a pending appointment. The row lock
// on the slot plus the active-appointment check make the operation a single
// atomic check-and-insert: two simultaneous attempts yield exactly one
// appointment and one ConflictError, and the slot is hidden in the same
// transaction that creates the appointment.
type Reserve struct {
	repo   domain.Repository
	guard  *locker.Locker
	events *events.Dispatcher

	now func() time.Time
}

// NewReserve wires the coordinator. guard may be nil; the redis guard only
// short-circuits duplicate submits, the transaction is authoritative.
func NewReserve(
	repo domain.Repository,
	guard *locker.Locker,
	dispatcher *events.Dispatcher,
) *Reserve {
	return &Reserve{
		repo:   repo,
		guard:  guard,
		events: dispatcher,
		now:    time.Now,
	}
}

func (uc *Reserve) Execute(
	ctx context.Context,
	in ReserveInput,
) (*models.Appointment, error) {

	if in.RequesterID == "" {
		return nil, apperr.Validation("missing_requester", "A requester id is required.")
	}

	if uc.guard != nil {
		ok, err := uc.guard.Acquire(ctx, in.SlotID)
		if err == nil && !ok {
			return nil, apperr.Conflict("reservation_in_progress", "Another booking attempt for this slot is in flight.")
		}
		if err == nil {
			defer uc.guard.Release(context.WithoutCancel(ctx), in.SlotID)
		}
		// A guard failure is not a booking failure; fall through to the
		// transaction.
	}

	var ap *models.Appointment

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		slot, err := tx.GetSlotForUpdate(ctx, in.SlotID)
		if err != nil {
			return err
		}
		if in.ProviderID != 0 && slot.ProviderID != in.ProviderID {
			return apperr.NotFound("slot_not_found", "The slot does not exist.")
		}

		if !slot.StartTime.After(uc.now()) {
			return apperr.Validation("slot_in_past", "The slot has already started.")
		}
		if slot.Hidden {
			return apperr.Conflict("slot_unavailable", "The slot is no longer available.")
		}

		active, err := tx.ListActiveAppointmentsBySlotIDs(ctx, []uuid.UUID{in.SlotID})
		if err != nil {
			return err
		}
		if len(active) > 0 {
			return apperr.Conflict("slot_already_booked", "The slot already has an active appointment.")
		}

		ap = &models.Appointment{
			ID:            uuid.New(),
			SlotID:        slot.ID,
			ProviderID:    slot.ProviderID,
			RequesterID:   in.RequesterID,
			RequesterName: in.RequesterName,
			StartTime:     slot.StartTime,
			EndTime:       slot.EndTime,
			Status:        string(domainbooking.InitialStatus()),
		}

		if err := tx.InsertAppointment(ctx, ap); err != nil {
			return err
		}
		return tx.SetSlotHidden(ctx, slot.ID, true)
	})
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		Type:          events.TypeAppointmentReserved,
		ProviderID:    ap.ProviderID,
		AppointmentID: &ap.ID,
	})

	return ap, nil
}
