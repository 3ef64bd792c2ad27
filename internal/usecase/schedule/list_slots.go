package schedule

import (
	"context"
	"time"

	domain "github.com/voluntree/scheduler/internal/domain/schedule"
	"github.com/voluntree/scheduler/internal/dto"
)

// ListSlots is the provider's own view: every future slot, hidden ones
// included, annotated with its derived protection state.
type ListSlots struct {
	repo domain.Repository

	now func() time.Time
}

func NewListSlots(repo domain.Repository) *ListSlots {
	return &ListSlots{repo: repo, now: time.Now}
}

func (uc *ListSlots) Execute(
	ctx context.Context,
	providerID uint,
) ([]dto.SlotDTO, error) {

	slots, err := uc.repo.ListSlots(ctx, providerID, uc.now())
	if err != nil {
		return nil, err
	}

	protected, err := protectedSlotIDs(ctx, uc.repo, slots)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SlotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, dto.SlotDTO{
			ID:                s.ID,
			StartTime:         s.StartTime,
			EndTime:           s.EndTime,
			RecurrenceGroupID: s.RecurrenceGroupID,
			Hidden:            s.Hidden,
			Protected:         protected[s.ID],
		})
	}

	return out, nil
}

// ListPublicSlots is the requester's view: future, visible slots only.
type ListPublicSlots struct {
	repo domain.Repository

	now func() time.Time
}

func NewListPublicSlots(repo domain.Repository) *ListPublicSlots {
	return &ListPublicSlots{repo: repo, now: time.Now}
}

func (uc *ListPublicSlots) Execute(
	ctx context.Context,
	providerID uint,
) ([]dto.PublicSlotDTO, error) {

	slots, err := uc.repo.ListVisibleSlots(ctx, providerID, uc.now())
	if err != nil {
		return nil, err
	}

	out := make([]dto.PublicSlotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, dto.PublicSlotDTO{
			ID:        s.ID,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}

	return out, nil
}
