package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/voluntree/scheduler/internal/apperr"
	domain "github.com/voluntree/scheduler/internal/domain/schedule"
	"github.com/voluntree/scheduler/internal/models"
)

func newMockRepo(t *testing.T) (*SchedulerGormRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return NewSchedulerGormRepository(gdb), mock
}

func TestListSlotsQuery(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	group := uuid.New()
	start := time.Date(2025, 6, 10, 13, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "availability_slots" WHERE provider_id = \$1 AND start_time >= \$2`).
		WithArgs(uint(1), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "provider_id", "start_time", "end_time", "recurrence_group_id", "hidden"}).
			AddRow(id, 1, start, start.Add(time.Hour), group, false))

	slots, err := repo.ListSlots(context.Background(), 1, time.Time{})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, id, slots[0].ID)
	assert.Equal(t, start, slots[0].StartTime.UTC())
	require.NotNil(t, slots[0].RecurrenceGroupID)
	assert.Equal(t, group, *slots[0].RecurrenceGroupID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListVisibleSlotsFiltersHidden(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "availability_slots" WHERE provider_id = \$1 AND start_time >= \$2 AND hidden = false`).
		WithArgs(uint(1), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	slots, err := repo.ListVisibleSlots(context.Background(), 1, time.Now())
	require.NoError(t, err)
	assert.Empty(t, slots)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSlotNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "availability_slots" WHERE id = \$1`).
		WithArgs(sqlmock.AnyArg(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetSlot(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "slot_not_found", apperr.CodeOf(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSlotForUpdateLocksRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "availability_slots" WHERE id = \$1 .* FOR UPDATE`).
		WithArgs(sqlmock.AnyArg(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "provider_id"}).AddRow(id, 1))

	slot, err := repo.GetSlotForUpdate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, slot.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetSlotHidden(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE "availability_slots" SET`).
		WithArgs(true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetSlotHidden(context.Background(), uuid.New(), true)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSlotsNoopOnEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)

	// No expectation set: an empty id list must not touch the database.
	require.NoError(t, repo.DeleteSlots(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListActiveAppointmentsFiltersStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	slotID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE slot_id IN \(\$1\) AND status IN \(\$2,\$3\)`).
		WithArgs(sqlmock.AnyArg(), "pending", "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"id", "slot_id", "status"}).
			AddRow(uuid.New(), slotID, "pending"))

	apps, err := repo.ListActiveAppointmentsBySlotIDs(context.Background(), []uuid.UUID{slotID})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, slotID, apps[0].SlotID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListActiveAppointmentsNoopOnEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)

	apps, err := repo.ListActiveAppointmentsBySlotIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, apps)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceRulesDeletesThenInserts(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM "availability_rules" WHERE provider_id = \$1`).
		WithArgs(uint(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(`INSERT INTO "availability_rules"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err := repo.ReplaceRules(context.Background(), 1, []models.AvailabilityRule{
		{ProviderID: 1, Weekday: 2, StartTime: "09:00", EndTime: "12:00"},
	})
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInTxCommitsOnSuccess(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "availability_slots" SET`).
		WithArgs(false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.InTx(context.Background(), func(tx domain.Repository) error {
		return tx.SetSlotHidden(context.Background(), uuid.New(), false)
	})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInTxRollsBackOnError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	wantErr := apperr.Conflict("slot_already_booked", "taken")
	err := repo.InTx(context.Background(), func(tx domain.Repository) error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	assert.NoError(t, mock.ExpectationsWereMet())
}
