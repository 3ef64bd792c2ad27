package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voluntree/scheduler/internal/apperr"
	"github.com/voluntree/scheduler/internal/events"
	"github.com/voluntree/scheduler/internal/infra/repository"
	"github.com/voluntree/scheduler/internal/models"
)

func bookedAppointment(t *testing.T, repo *repository.MemoryRepository, now time.Time) *models.Appointment {
	t.Helper()

	slot := futureSlot(t, repo, 1, now.Add(48*time.Hour))

	capture := &captureSubscriber{}
	dispatcher := events.NewDispatcher(zap.NewNop(), capture)
	defer dispatcher.Close()

	reserve := NewReserve(repo, nil, dispatcher)
	reserve.now = func() time.Time { return now }

	ap, err := reserve.Execute(context.Background(), ReserveInput{
		SlotID:      slot.ID,
		RequesterID: "vol-7",
	})
	require.NoError(t, err)
	return ap
}

func TestConfirmPendingAppointment(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	repo := repository.NewMemoryRepository()
	ap := bookedAppointment(t, repo, now)

	capture := &captureSubscriber{}
	dispatcher := events.NewDispatcher(zap.NewNop(), capture)

	uc := NewConfirmAppointment(repo, dispatcher)
	uc.now = func() time.Time { return now }

	got, err := uc.Execute(context.Background(), 1, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", got.Status)
	require.NotNil(t, got.ConfirmedAt)
	assert.Equal(t, now, *got.ConfirmedAt)

	dispatcher.Close()
	evts := capture.all()
	require.Len(t, evts, 1)
	assert.Equal(t, events.TypeAppointmentConfirmed, evts[0].Type)
}

func TestConfirmTwiceFails(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	repo := repository.NewMemoryRepository()
	ap := bookedAppointment(t, repo, now)

	dispatcher := events.NewDispatcher(zap.NewNop())
	defer dispatcher.Close()

	uc := NewConfirmAppointment(repo, dispatcher)
	uc.now = func() time.Time { return now }

	_, err := uc.Execute(context.Background(), 1, ap.ID)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), 1, ap.ID)
	require.Error(t, err)
	assert.Equal(t, "invalid_state", apperr.CodeOf(err))
}

func TestConfirmWrongProvider(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	repo := repository.NewMemoryRepository()
	ap := bookedAppointment(t, repo, now)

	dispatcher := events.NewDispatcher(zap.NewNop())
	defer dispatcher.Close()

	uc := NewConfirmAppointment(repo, dispatcher)

	_, err := uc.Execute(context.Background(), 99, ap.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDeclinePendingKeepsSlotHidden(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	repo := repository.NewMemoryRepository()
	ap := bookedAppointment(t, repo, now)

	capture := &captureSubscriber{}
	dispatcher := events.NewDispatcher(zap.NewNop(), capture)

	uc := NewCancelAppointment(repo, dispatcher)
	uc.now = func() time.Time { return now }

	got, err := uc.Execute(context.Background(), 1, ap.ID, "double booked")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	assert.Equal(t, "double booked", got.CancellationReason)
	require.NotNil(t, got.CancelledAt)

	// Ending the appointment never re-exposes the slot; republishing is a
	// separate provider action.
	slot, err := repo.GetSlot(context.Background(), ap.SlotID)
	require.NoError(t, err)
	assert.True(t, slot.Hidden)

	dispatcher.Close()
	evts := capture.all()
	require.Len(t, evts, 1)
	assert.Equal(t, events.TypeAppointmentCancelled, evts[0].Type)
	assert.Equal(t, "double booked", evts[0].Reason)
}

func TestCancelConfirmedAppointment(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	repo := repository.NewMemoryRepository()
	ap := bookedAppointment(t, repo, now)

	dispatcher := events.NewDispatcher(zap.NewNop())
	defer dispatcher.Close()

	confirm := NewConfirmAppointment(repo, dispatcher)
	confirm.now = func() time.Time { return now }
	_, err := confirm.Execute(context.Background(), 1, ap.ID)
	require.NoError(t, err)

	cancel := NewCancelAppointment(repo, dispatcher)
	cancel.now = func() time.Time { return now }
	got, err := cancel.Execute(context.Background(), 1, ap.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
}

func TestCancelTwiceFails(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	repo := repository.NewMemoryRepository()
	ap := bookedAppointment(t, repo, now)

	dispatcher := events.NewDispatcher(zap.NewNop())
	defer dispatcher.Close()

	uc := NewCancelAppointment(repo, dispatcher)
	uc.now = func() time.Time { return now }

	_, err := uc.Execute(context.Background(), 1, ap.ID, "")
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), 1, ap.ID, "")
	require.Error(t, err)
	assert.Equal(t, "invalid_state", apperr.CodeOf(err))
}

func TestCancelledSlotCanBeRebookedAfterRepublish(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	repo := repository.NewMemoryRepository()
	ap := bookedAppointment(t, repo, now)

	dispatcher := events.NewDispatcher(zap.NewNop())
	defer dispatcher.Close()

	cancel := NewCancelAppointment(repo, dispatcher)
	cancel.now = func() time.Time { return now }
	_, err := cancel.Execute(context.Background(), 1, ap.ID, "")
	require.NoError(t, err)

	// Simulate the provider republishing the slot.
	require.NoError(t, repo.SetSlotHidden(context.Background(), ap.SlotID, false))

	reserve := NewReserve(repo, nil, dispatcher)
	reserve.now = func() time.Time { return now }

	again, err := reserve.Execute(context.Background(), ReserveInput{
		SlotID:      ap.SlotID,
		RequesterID: "vol-8",
	})
	require.NoError(t, err)
	assert.NotEqual(t, ap.ID, again.ID)
	assert.Equal(t, ap.SlotID, again.SlotID)
}
