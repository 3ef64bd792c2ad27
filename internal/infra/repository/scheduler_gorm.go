package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/voluntree/scheduler/internal/apperr"
	domain "github.com/voluntree/scheduler/internal/domain/schedule"
	"github.com/voluntree/scheduler/internal/models"
)

type SchedulerGormRepository struct {
	db *gorm.DB
}

func NewSchedulerGormRepository(db *gorm.DB) *SchedulerGormRepository {
	return &SchedulerGormRepository{db: db}
}

// InTx runs fn against a transactional copy of the repository. Nested calls
// reuse gorm's savepoint handling.
func (r *SchedulerGormRepository) InTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SchedulerGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (r *SchedulerGormRepository) ListSlots(
	ctx context.Context,
	providerID uint,
	from time.Time,
) ([]models.AvailabilitySlot, error) {

	var slots []models.AvailabilitySlot
	if err := r.db.WithContext(ctx).
		Where("provider_id = ? AND start_time >= ?", providerID, from).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *SchedulerGormRepository) ListVisibleSlots(
	ctx context.Context,
	providerID uint,
	from time.Time,
) ([]models.AvailabilitySlot, error) {

	var slots []models.AvailabilitySlot
	if err := r.db.WithContext(ctx).
		Where("provider_id = ? AND start_time >= ? AND hidden = false", providerID, from).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *SchedulerGormRepository) GetSlot(
	ctx context.Context,
	id uuid.UUID,
) (*models.AvailabilitySlot, error) {

	var slot models.AvailabilitySlot
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("slot_not_found", "The slot does not exist.")
		}
		return nil, err
	}

	return &slot, nil
}

func (r *SchedulerGormRepository) GetSlotForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*models.AvailabilitySlot, error) {

	var slot models.AvailabilitySlot
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("slot_not_found", "The slot does not exist.")
		}
		return nil, err
	}

	return &slot, nil
}

func (r *SchedulerGormRepository) InsertSlots(
	ctx context.Context,
	slots []models.AvailabilitySlot,
) error {
	if len(slots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&slots).Error
}

func (r *SchedulerGormRepository) DeleteSlots(
	ctx context.Context,
	ids []uuid.UUID,
) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&models.AvailabilitySlot{}).Error
}

func (r *SchedulerGormRepository) SetSlotHidden(
	ctx context.Context,
	id uuid.UUID,
	hidden bool,
) error {
	return r.db.WithContext(ctx).
		Model(&models.AvailabilitySlot{}).
		Where("id = ?", id).
		Update("hidden", hidden).Error
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *SchedulerGormRepository) ListActiveAppointmentsBySlotIDs(
	ctx context.Context,
	slotIDs []uuid.UUID,
) ([]models.Appointment, error) {

	if len(slotIDs) == 0 {
		return nil, nil
	}

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("slot_id IN ? AND status IN ?", slotIDs, []string{"pending", "confirmed"}).
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *SchedulerGormRepository) GetAppointment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("appointment_not_found", "The appointment does not exist.")
		}
		return nil, err
	}

	return &ap, nil
}

func (r *SchedulerGormRepository) GetAppointmentForProvider(
	ctx context.Context,
	id uuid.UUID,
	providerID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", id, providerID).
		First(&ap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("appointment_not_found", "The appointment does not exist.")
		}
		return nil, err
	}

	return &ap, nil
}

func (r *SchedulerGormRepository) InsertAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *SchedulerGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *SchedulerGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	providerID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"provider_id = ? AND start_time >= ? AND start_time < ?",
			providerID, start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Template rules
// --------------------------------------------------

func (r *SchedulerGormRepository) ListRules(
	ctx context.Context,
	providerID uint,
) ([]models.AvailabilityRule, error) {

	var rules []models.AvailabilityRule
	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("weekday ASC, start_time ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *SchedulerGormRepository) ReplaceRules(
	ctx context.Context,
	providerID uint,
	rules []models.AvailabilityRule,
) error {

	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Delete(&models.AvailabilityRule{}).Error; err != nil {
		return err
	}

	if len(rules) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rules).Error
}

// Compile-time check
var _ domain.Repository = (*SchedulerGormRepository)(nil)
