package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/voluntree/scheduler/internal/apperr"
	domain "github.com/voluntree/scheduler/internal/domain/schedule"
)

// RepublishSlot re-exposes a hidden slot for booking. A cancelled
// appointment never un-hides its slot implicitly; this explicit provider
// action is the only way back into public listings.
type RepublishSlot struct {
	repo domain.Repository

	now func() time.Time
}

func NewRepublishSlot(repo domain.Repository) *RepublishSlot {
	return &RepublishSlot{repo: repo, now: time.Now}
}

func (uc *RepublishSlot) Execute(
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
		if !slot.StartTime.After(uc.now()) {
			return apperr.Validation("slot_in_past", "A past slot cannot be republished.")
		}

		active, err := tx.ListActiveAppointmentsBySlotIDs(ctx, []uuid.UUID{slotID})
		if err != nil {
			return err
		}
		if len(active) > 0 {
			return apperr.Conflict("slot_already_booked", "The slot still has an active appointment.")
		}

		return tx.SetSlotHidden(ctx, slotID, false)
	})
}
