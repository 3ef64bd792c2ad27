package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/voluntree/scheduler/internal/apperr"
	domain "github.com/voluntree/scheduler/internal/domain/schedule"
	"github.com/voluntree/scheduler/internal/models"
)

// MemoryRepository is an in-memory schedule.Repository used by use-case
// tests and local tooling. InTx serializes transactions behind one mutex,
// which models the row-lock behavior the SQL implementation relies on:
// concurrent reserves execute one at a time, and a failed transaction
// leaves no partial writes.
type MemoryRepository struct {
	mu    sync.Mutex
	state *memoryState
}

type memoryState struct {
	slots        map[uuid.UUID]models.AvailabilitySlot
	appointments map[uuid.UUID]models.Appointment
	rules        []models.AvailabilityRule
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		state: &memoryState{
			slots:        make(map[uuid.UUID]models.AvailabilitySlot),
			appointments: make(map[uuid.UUID]models.Appointment),
		},
	}
}

func (m *MemoryRepository) InTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.state.clone()
	if err := fn(&memoryTx{state: m.state}); err != nil {
		m.state = snapshot
		return err
	}
	return nil
}

func (s *memoryState) clone() *memoryState {
	c := &memoryState{
		slots:        make(map[uuid.UUID]models.AvailabilitySlot, len(s.slots)),
		appointments: make(map[uuid.UUID]models.Appointment, len(s.appointments)),
		rules:        append([]models.AvailabilityRule(nil), s.rules...),
	}
	for id, slot := range s.slots {
		c.slots[id] = slot
	}
	for id, ap := range s.appointments {
		c.appointments[id] = ap
	}
	return c
}

// Non-transactional reads take the same mutex per call.

func (m *MemoryRepository) ListSlots(ctx context.Context, providerID uint, from time.Time) ([]models.AvailabilitySlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{state: m.state}).ListSlots(ctx, providerID, from)
}

func (m *MemoryRepository) ListVisibleSlots(ctx context.Context, providerID uint, from time.Time) ([]models.AvailabilitySlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{state: m.state}).ListVisibleSlots(ctx, providerID, from)
}

func (m *MemoryRepository) GetSlot(ctx context.Context, id uuid.UUID) (*models.AvailabilitySlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{state: m.state}).GetSlot(ctx, id)
}

func (m *MemoryRepository) GetSlotForUpdate(ctx context.Context, id uuid.UUID) (*models.AvailabilitySlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{state: m.state}).GetSlotForUpdate(ctx, id)
}

func (m *MemoryRepository) InsertSlots(ctx context.Context, slots []models.AvailabilitySlot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{state: m.state}).InsertSlots(ctx, slots)
}

func (m *MemoryRepository) DeleteSlots(ctx context.Context, ids []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{state: m.state}).DeleteSlots(ctx, ids)
}

func (m *MemoryRepository) SetSlotHidden(ctx context.Context, id uuid.UUID, hidden bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{state: m.state}).SetSlotHidden(ctx, id, hidden)
}

func (m *MemoryRepository) ListActiveAppointmentsBySlotIDs(ctx context.Context, slotIDs []uuid.UUID) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{state: m.state}).ListActiveAppointmentsBySlotIDs(ctx, slotIDs)
}

func (m *MemoryRepository) GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{state: m.state}).GetAppointment(ctx, id)
}

func (m *MemoryRepository) GetAppointmentForProvider(ctx context.Context, id uuid.UUID, providerID uint) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{state: m.state}).GetAppointmentForProvider(ctx, id, providerID)
}

func (m *MemoryRepository) InsertAppointment(ctx context.Context, ap *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{state: m.state}).InsertAppointment(ctx, ap)
}

func (m *MemoryRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{state: m.state}).UpdateAppointment(ctx, ap)
}

func (m *MemoryRepository) ListAppointmentsForPeriod(ctx context.Context, providerID uint, start, end time.Time) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{state: m.state}).ListAppointmentsForPeriod(ctx, providerID, start, end)
}

func (m *MemoryRepository) ListRules(ctx context.Context, providerID uint) ([]models.AvailabilityRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{state: m.state}).ListRules(ctx, providerID)
}

func (m *MemoryRepository) ReplaceRules(ctx context.Context, providerID uint, rules []models.AvailabilityRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{state: m.state}).ReplaceRules(ctx, providerID, rules)
}

// memoryTx operates on state that is already guarded by the repository
// mutex.
type memoryTx struct {
	state *memoryState
}

func (t *memoryTx) InTx(ctx context.Context, fn func(domain.Repository) error) error {
	// Already inside the transaction; run against the same view.
	return fn(t)
}

func (t *memoryTx) ListSlots(_ context.Context, providerID uint, from time.Time) ([]models.AvailabilitySlot, error) {
	var out []models.AvailabilitySlot
	for _, slot := range t.state.slots {
		if slot.ProviderID == providerID && !slot.StartTime.Before(from) {
			out = append(out, slot)
		}
	}
	sortSlots(out)
	return out, nil
}

func (t *memoryTx) ListVisibleSlots(_ context.Context, providerID uint, from time.Time) ([]models.AvailabilitySlot, error) {
	var out []models.AvailabilitySlot
	for _, slot := range t.state.slots {
		if slot.ProviderID == providerID && !slot.StartTime.Before(from) && !slot.Hidden {
			out = append(out, slot)
		}
	}
	sortSlots(out)
	return out, nil
}

func (t *memoryTx) GetSlot(_ context.Context, id uuid.UUID) (*models.AvailabilitySlot, error) {
	slot, ok := t.state.slots[id]
	if !ok {
		return nil, apperr.NotFound("slot_not_found", "The slot does not exist.")
	}
	return &slot, nil
}

func (t *memoryTx) GetSlotForUpdate(ctx context.Context, id uuid.UUID) (*models.AvailabilitySlot, error) {
	return t.GetSlot(ctx, id)
}

func (t *memoryTx) InsertSlots(_ context.Context, slots []models.AvailabilitySlot) error {
	for _, slot := range slots {
		t.state.slots[slot.ID] = slot
	}
	return nil
}

func (t *memoryTx) DeleteSlots(_ context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(t.state.slots, id)
	}
	return nil
}

func (t *memoryTx) SetSlotHidden(_ context.Context, id uuid.UUID, hidden bool) error {
	slot, ok := t.state.slots[id]
	if !ok {
		return apperr.NotFound("slot_not_found", "The slot does not exist.")
	}
	slot.Hidden = hidden
	t.state.slots[id] = slot
	return nil
}

func (t *memoryTx) ListActiveAppointmentsBySlotIDs(_ context.Context, slotIDs []uuid.UUID) ([]models.Appointment, error) {
	wanted := make(map[uuid.UUID]bool, len(slotIDs))
	for _, id := range slotIDs {
		wanted[id] = true
	}

	var out []models.Appointment
	for _, ap := range t.state.appointments {
		if wanted[ap.SlotID] && (ap.Status == "pending" || ap.Status == "confirmed") {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (t *memoryTx) GetAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	ap, ok := t.state.appointments[id]
	if !ok {
		return nil, apperr.NotFound("appointment_not_found", "The appointment does not exist.")
	}
	return &ap, nil
}

func (t *memoryTx) GetAppointmentForProvider(ctx context.Context, id uuid.UUID, providerID uint) (*models.Appointment, error) {
	ap, err := t.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if ap.ProviderID != providerID {
		return nil, apperr.NotFound("appointment_not_found", "The appointment does not exist.")
	}
	return ap, nil
}

func (t *memoryTx) InsertAppointment(_ context.Context, ap *models.Appointment) error {
	t.state.appointments[ap.ID] = *ap
	return nil
}

func (t *memoryTx) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if _, ok := t.state.appointments[ap.ID]; !ok {
		return apperr.NotFound("appointment_not_found", "The appointment does not exist.")
	}
	t.state.appointments[ap.ID] = *ap
	return nil
}

func (t *memoryTx) ListAppointmentsForPeriod(_ context.Context, providerID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range t.state.appointments {
		if ap.ProviderID == providerID && !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (t *memoryTx) ListRules(_ context.Context, providerID uint) ([]models.AvailabilityRule, error) {
	var out []models.AvailabilityRule
	for _, rule := range t.state.rules {
		if rule.ProviderID == providerID {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (t *memoryTx) ReplaceRules(_ context.Context, providerID uint, rules []models.AvailabilityRule) error {
	var kept []models.AvailabilityRule
	for _, rule := range t.state.rules {
		if rule.ProviderID != providerID {
			kept = append(kept, rule)
		}
	}
	t.state.rules = append(kept, rules...)
	return nil
}

func sortSlots(slots []models.AvailabilitySlot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
}

var (
	_ domain.Repository = (*MemoryRepository)(nil)
	_ domain.Repository = (*memoryTx)(nil)
)
