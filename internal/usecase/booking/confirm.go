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

// ConfirmAppointment moves a pending appointment to confirmed. The slot
// stays hidden; nothing about it changes.
type ConfirmAppointment struct {
	repo   domain.Repository
	events *events.Dispatcher

	now func() time.Time
}

func NewConfirmAppointment(
	repo domain.Repository,
	dispatcher *events.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{repo: repo, events: dispatcher, now: time.Now}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	providerID uint,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	var ap *models.Appointment

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointmentForProvider(ctx, appointmentID, providerID)
		if err != nil {
			return err
		}

		if err := domainbooking.Confirm(ap, uc.now()); err != nil {
			return err
		}

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.Event{
		Type:          events.TypeAppointmentConfirmed,
		ProviderID:    providerID,
		AppointmentID: &ap.ID,
	})

	return ap, nil
}
