package schedule

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voluntree/scheduler/internal/apperr"
	domain "github.com/voluntree/scheduler/internal/domain/schedule"
	"github.com/voluntree/scheduler/internal/events"
	"github.com/voluntree/scheduler/internal/infra/repository"
	"github.com/voluntree/scheduler/internal/models"
)

// captureSubscriber records every event it receives.
type captureSubscriber struct {
	mu     sync.Mutex
	events []events.Event
}

func (c *captureSubscriber) Handle(ev events.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
	return nil
}

func (c *captureSubscriber) all() []events.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]events.Event(nil), c.events...)
}

func testClock(t *testing.T) (time.Time, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	// A Monday in June, far from any clock change.
	return time.Date(2025, 6, 2, 10, 0, 0, 0, loc), loc
}

func newUpdateTemplate(repo domain.Repository, loc *time.Location, now time.Time) (*UpdateTemplate, *captureSubscriber, *events.Dispatcher) {
	capture := &captureSubscriber{}
	dispatcher := events.NewDispatcher(zap.NewNop(), capture)

	uc := NewUpdateTemplate(repo, dispatcher, loc, 4)
	uc.now = func() time.Time { return now }
	return uc, capture, dispatcher
}

func TestUpdateTemplateInitialSave(t *testing.T) {
	now, loc := testClock(t)
	repo := repository.NewMemoryRepository()
	uc, capture, dispatcher := newUpdateTemplate(repo, loc, now)

	tpl := domain.WeeklyTemplate{Days: map[int][]domain.TimeRange{
		2: {{Start: "09:00", End: "12:00"}},
	}}

	res, err := uc.Execute(context.Background(), 1, tpl)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Deleted)
	assert.Equal(t, 4, res.Created)
	assert.Equal(t, 0, res.Skipped)
	assert.Equal(t, 0, res.ProtectedPreserved)

	slots, err := repo.ListSlots(context.Background(), 1, time.Time{})
	require.NoError(t, err)
	assert.Len(t, slots, 4)

	rules, err := repo.ListRules(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "09:00", rules[0].StartTime)

	dispatcher.Close()
	got := capture.all()
	require.Len(t, got, 1)
	assert.Equal(t, events.TypeSlotsRegenerated, got[0].Type)
	meta, ok := got[0].Metadata.(events.RegenerationMetadata)
	require.True(t, ok)
	assert.Equal(t, 4, meta.Created)
}

func TestUpdateTemplateClearPreservesBookedSlot(t *testing.T) {
	now, loc := testClock(t)
	repo := repository.NewMemoryRepository()
	uc, _, dispatcher := newUpdateTemplate(repo, loc, now)
	defer dispatcher.Close()

	ctx := context.Background()

	booked := seedSlot(t, repo, 1, now.AddDate(0, 0, 8))
	seedSlot(t, repo, 1, now.AddDate(0, 0, 9))
	seedSlot(t, repo, 1, now.AddDate(0, 0, 10))
	seedAppointment(t, repo, booked, "requester-1", "pending")

	res, err := uc.Execute(ctx, 1, domain.WeeklyTemplate{Days: map[int][]domain.TimeRange{}})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Deleted)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 0, res.Skipped)
	assert.Equal(t, 1, res.ProtectedPreserved)

	remaining, err := repo.ListSlots(ctx, 1, time.Time{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, booked.ID, remaining[0].ID)
}

func TestUpdateTemplateSkipsCollidingOccurrences(t *testing.T) {
	now, loc := testClock(t)
	repo := repository.NewMemoryRepository()
	uc, _, dispatcher := newUpdateTemplate(repo, loc, now)
	defer dispatcher.Close()

	ctx := context.Background()

	// A booked Tuesday 10:00-11:00 next week sits inside the desired
	// Tuesday 09:00-12:00 window.
	bookedStart := time.Date(2025, 6, 10, 10, 0, 0, 0, loc)
	booked := seedSlot(t, repo, 1, bookedStart)
	seedAppointment(t, repo, booked, "requester-1", "confirmed")

	tpl := domain.WeeklyTemplate{Days: map[int][]domain.TimeRange{
		2: {{Start: "09:00", End: "12:00"}},
	}}

	res, err := uc.Execute(ctx, 1, tpl)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Deleted)
	assert.Equal(t, 3, res.Created)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, res.ProtectedPreserved)
	assert.Equal(t, []string{"2025-06-10"}, res.SkippedDates)

	// The booked slot survived untouched and no new slot overlaps it.
	slots, err := repo.ListSlots(ctx, 1, time.Time{})
	require.NoError(t, err)
	require.Len(t, slots, 4)
	for _, slot := range slots {
		if slot.ID == booked.ID {
			continue
		}
		noOverlap := !slot.StartTime.Before(booked.EndTime.UTC()) || !booked.StartTime.UTC().Before(slot.EndTime)
		assert.True(t, noOverlap, "slot at %s overlaps the booked slot", slot.StartTime)
	}
}

func TestUpdateTemplateResaveIsStable(t *testing.T) {
	now, loc := testClock(t)
	repo := repository.NewMemoryRepository()
	uc, _, dispatcher := newUpdateTemplate(repo, loc, now)
	defer dispatcher.Close()

	ctx := context.Background()
	tpl := domain.WeeklyTemplate{Days: map[int][]domain.TimeRange{
		4: {{Start: "13:00", End: "15:00"}},
	}}

	first, err := uc.Execute(ctx, 1, tpl)
	require.NoError(t, err)

	second, err := uc.Execute(ctx, 1, tpl)
	require.NoError(t, err)

	assert.Equal(t, first.Created, second.Deleted)
	assert.Equal(t, first.Created, second.Created)
	assert.Equal(t, 0, second.Skipped)

	slots, err := repo.ListSlots(ctx, 1, time.Time{})
	require.NoError(t, err)
	assert.Len(t, slots, first.Created)
}

func TestUpdateTemplateRejectsConflictsUntouched(t *testing.T) {
	now, loc := testClock(t)
	repo := repository.NewMemoryRepository()
	uc, capture, dispatcher := newUpdateTemplate(repo, loc, now)

	ctx := context.Background()
	existing := seedSlot(t, repo, 1, now.AddDate(0, 0, 3))

	bad := domain.WeeklyTemplate{Days: map[int][]domain.TimeRange{
		1: {{Start: "09:00", End: "11:00"}, {Start: "10:00", End: "12:00"}},
	}}

	_, err := uc.Execute(ctx, 1, bad)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	slots, err := repo.ListSlots(ctx, 1, time.Time{})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, existing.ID, slots[0].ID)

	dispatcher.Close()
	assert.Empty(t, capture.all())
}

func TestUpdateTemplateScopedToProvider(t *testing.T) {
	now, loc := testClock(t)
	repo := repository.NewMemoryRepository()
	uc, _, dispatcher := newUpdateTemplate(repo, loc, now)
	defer dispatcher.Close()

	ctx := context.Background()
	other := seedSlot(t, repo, 2, now.AddDate(0, 0, 5))

	_, err := uc.Execute(ctx, 1, domain.WeeklyTemplate{Days: map[int][]domain.TimeRange{
		3: {{Start: "09:00", End: "10:00"}},
	}})
	require.NoError(t, err)

	theirs, err := repo.ListSlots(ctx, 2, time.Time{})
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, other.ID, theirs[0].ID)
}

// --------

func seedSlot(t *testing.T, repo domain.Repository, providerID uint, start time.Time) models.AvailabilitySlot {
	t.Helper()
	slot := models.AvailabilitySlot{
		ID:         uuid.New(),
		ProviderID: providerID,
		StartTime:  start.UTC(),
		EndTime:    start.Add(time.Hour).UTC(),
	}
	require.NoError(t, repo.InsertSlots(context.Background(), []models.AvailabilitySlot{slot}))
	return slot
}

func seedAppointment(t *testing.T, repo domain.Repository, slot models.AvailabilitySlot, requesterID, status string) models.Appointment {
	t.Helper()
	ap := models.Appointment{
		ID:          uuid.New(),
		SlotID:      slot.ID,
		ProviderID:  slot.ProviderID,
		RequesterID: requesterID,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		Status:      status,
	}
	require.NoError(t, repo.InsertAppointment(context.Background(), &ap))
	return ap
}
