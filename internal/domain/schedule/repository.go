package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/voluntree/scheduler/internal/models"
)

type SlotRepository interface {
	// ListSlots returns every slot of the provider starting at or after
	// from, hidden ones included.
	ListSlots(
		ctx context.Context,
		providerID uint,
		from time.Time,
	) ([]models.AvailabilitySlot, error)

	// ListVisibleSlots is the public view: future, not hidden.
	ListVisibleSlots(
		ctx context.Context,
		providerID uint,
		from time.Time,
	) ([]models.AvailabilitySlot, error)

	GetSlot(
		ctx context.Context,
		id uuid.UUID,
	) (*models.AvailabilitySlot, error)

	// GetSlotForUpdate loads a slot under a row lock. Only meaningful
	// inside InTx.
	GetSlotForUpdate(
		ctx context.Context,
		id uuid.UUID,
	) (*models.AvailabilitySlot, error)

	InsertSlots(
		ctx context.Context,
		slots []models.AvailabilitySlot,
	) error

	DeleteSlots(
		ctx context.Context,
		ids []uuid.UUID,
	) error

	SetSlotHidden(
		ctx context.Context,
		id uuid.UUID,
		hidden bool,
	) error
}

type AppointmentRepository interface {
	// ListActiveAppointmentsBySlotIDs returns appointments in pending or
	// confirmed status referencing any of the given slots. The protected
	// set is derived from this on demand, never cached.
	ListActiveAppointmentsBySlotIDs(
		ctx context.Context,
		slotIDs []uuid.UUID,
	) ([]models.Appointment, error)

	GetAppointment(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	GetAppointmentForProvider(
		ctx context.Context,
		id uuid.UUID,
		providerID uint,
	) (*models.Appointment, error)

	InsertAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		providerID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}

type TemplateRepository interface {
	ListRules(
		ctx context.Context,
		providerID uint,
	) ([]models.AvailabilityRule, error)

	// ReplaceRules swaps the provider's whole template in one shot.
	ReplaceRules(
		ctx context.Context,
		providerID uint,
		rules []models.AvailabilityRule,
	) error
}

// Repository is the persistence boundary consumed by the use cases. InTx
// runs fn against a transactional view of the same repository; reconcile
// and reserve must do all their reads and writes inside one InTx call.
type Repository interface {
	SlotRepository
	AppointmentRepository
	TemplateRepository

	InTx(ctx context.Context, fn func(Repository) error) error
}
