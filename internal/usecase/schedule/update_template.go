package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/voluntree/scheduler/internal/domain/schedule"
	"github.com/voluntree/scheduler/internal/events"
	"github.com/voluntree/scheduler/internal/models"
	"github.com/voluntree/scheduler/internal/timezone"
)

// ReconcileResult reports what a template save did to the materialized
// slots. SkippedDates lists the local dates of desired occurrences that
// were dropped because a booked slot already occupies their window.
type ReconcileResult struct {
	Deleted            int      `json:"deleted"`
	Created            int      `json:"created"`
	Skipped            int      `json:"skipped"`
	ProtectedPreserved int      `json:"protected_preserved"`
	SkippedDates       []string `json:"skipped_dates,omitempty"`
}

// UpdateTemplate validates an edited weekly template and reconciles the
// provider's materialized slots against it: unprotected slots are deleted,
// the new pattern is materialized, and candidates colliding with a booked
// slot are skipped. Everything runs in one transaction; a failure leaves
// the previous state fully intact.
type UpdateTemplate struct {
	repo   domain.Repository
	events *events.Dispatcher

	loc          *time.Location
	horizonWeeks int

	now func() time.Time
}

func NewUpdateTemplate(
	repo domain.Repository,
	dispatcher *events.Dispatcher,
	loc *time.Location,
	horizonWeeks int,
) *UpdateTemplate {
	if horizonWeeks <= 0 {
		horizonWeeks = domain.DefaultHorizonWeeks
	}
	return &UpdateTemplate{
		repo:         repo,
		events:       dispatcher,
		loc:          loc,
		horizonWeeks: horizonWeeks,
		now:          time.Now,
	}
}

func (uc *UpdateTemplate) Execute(
	ctx context.Context,
	providerID uint,
	tpl domain.WeeklyTemplate,
) (*ReconcileResult, error) {

	// Hard gate: a template with any invalid or conflicting range is
	// refused outright before anything is touched.
	if err := tpl.Validate(); err != nil {
		return nil, err
	}

	var res ReconcileResult

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		existing, err := tx.ListSlots(ctx, providerID, time.Time{})
		if err != nil {
			return err
		}

		protected, err := protectedSlotIDs(ctx, tx, existing)
		if err != nil {
			return err
		}

		var deletable []uuid.UUID
		var protectedSlots []models.AvailabilitySlot
		for _, slot := range existing {
			if protected[slot.ID] {
				protectedSlots = append(protectedSlots, slot)
				continue
			}
			deletable = append(deletable, slot.ID)
		}

		if err := tx.DeleteSlots(ctx, deletable); err != nil {
			return err
		}

		desired, err := domain.Materialize(providerID, tpl, uc.horizonWeeks, uc.now(), uc.loc)
		if err != nil {
			return err
		}

		var insertable []models.AvailabilitySlot
		var skippedDates []string
		for _, candidate := range desired {
			if collides(candidate, protectedSlots) {
				date, _ := timezone.ToLocal(candidate.StartTime, uc.loc)
				skippedDates = append(skippedDates, date)
				continue
			}
			insertable = append(insertable, candidate)
		}

		if err := tx.InsertSlots(ctx, insertable); err != nil {
			return err
		}

		if err := tx.ReplaceRules(ctx, providerID, tpl.Rules(providerID)); err != nil {
			return err
		}

		res = ReconcileResult{
			Deleted:            len(deletable),
			Created:            len(insertable),
			Skipped:            len(skippedDates),
			ProtectedPreserved: len(protectedSlots),
			SkippedDates:       skippedDates,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		Type:       events.TypeSlotsRegenerated,
		ProviderID: providerID,
		Metadata: events.RegenerationMetadata{
			Deleted:      res.Deleted,
			Created:      res.Created,
			Skipped:      res.Skipped,
			SkippedDates: res.SkippedDates,
		},
	})

	return &res, nil
}

// protectedSlotIDs derives the protected set on demand: every slot id
// referenced by a pending or confirmed appointment.
func protectedSlotIDs(
	ctx context.Context,
	repo domain.Repository,
	slots []models.AvailabilitySlot,
) (map[uuid.UUID]bool, error) {

	ids := make([]uuid.UUID, 0, len(slots))
	for _, s := range slots {
		ids = append(ids, s.ID)
	}

	active, err := repo.ListActiveAppointmentsBySlotIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	protected := make(map[uuid.UUID]bool, len(active))
	for _, ap := range active {
		protected[ap.SlotID] = true
	}
	return protected, nil
}

// collides applies the interval-overlap test across absolute instants.
func collides(candidate models.AvailabilitySlot, protected []models.AvailabilitySlot) bool {
	for _, p := range protected {
		if candidate.StartTime.Before(p.EndTime) && p.StartTime.Before(candidate.EndTime) {
			return true
		}
	}
	return false
}
