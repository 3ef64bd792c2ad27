package schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/voluntree/scheduler/internal/apperr"
	domain "github.com/voluntree/scheduler/internal/domain/schedule"
)

// DeleteSlot removes a single slot instance under the same protection rule
// as reconciliation: a slot referenced by an active appointment is never
// deleted.
type DeleteSlot struct {
	repo domain.Repository
}

func NewDeleteSlot(repo domain.Repository) *DeleteSlot {
	return &DeleteSlot{repo: repo}
}

func (uc *DeleteSlot) Execute(
	ctx context.Context,
	providerID uint,
	slotID uuid.UUID,
) error {

	return uc.repo.InTx(ctx, func(tx domain.Repository) error {
		slot, err := tx.GetSlotForUpdate(ctx, slotID)
		if err != nil {
			return err
		}
		if slot.ProviderID != providerID {
			return apperr.NotFound("slot_not_found", "The slot does not exist.")
		}

		active, err := tx.ListActiveAppointmentsBySlotIDs(ctx, []uuid.UUID{slotID})
		if err != nil {
			return err
		}
		if len(active) > 0 {
			return apperr.Protected(
				"slot_protected",
				"The slot has an active appointment. Cancel the appointment first.",
				slotID,
			)
		}

		return tx.DeleteSlots(ctx, []uuid.UUID{slotID})
	})
}
