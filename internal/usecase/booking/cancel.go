package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainbooking "github.com/voluntree/scheduler/internal/domain/booking"
	domain "github.com/voluntree/scheduler/internal/domain/schedule"
	"github.com/voluntree/scheduler/internal/events"
	"github.com/voluntree/scheduler/internal/models"
)

// CancelAppointment ends an appointment, either declining it while pending
// or cancelling it after confirmation. The slot stays hidden: re-exposing
// its window is a separate, explicit provider action, never a side effect
// of cancellation.
type CancelAppointment struct {
	repo   domain.Repository
	events *events.Dispatcher

	now func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	dispatcher *events.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{repo: repo, events: dispatcher, now: time.Now}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	providerID uint,
	appointmentID uuid.UUID,
	reason string,
) (*models.Appointment, error) {

	var ap *models.Appointment

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointmentForProvider(ctx, appointmentID, providerID)
		if err != nil {
			return err
		}

		if err := domainbooking.Cancel(ap, reason, uc.now()); err != nil {
			return err
		}

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		Type:          events.TypeAppointmentCancelled,
		ProviderID:    providerID,
		AppointmentID: &ap.ID,
		Reason:        reason,
	})

	return ap, nil
}
