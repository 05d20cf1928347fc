package service

import (
	"context"
	"testing"

	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/repository/specification"
	"tg-miniapp-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func currentBalance(t *testing.T, factory unitofwork.RepositoryFactory, userId uuid.UUID) int {
	t.Helper()

	uow := factory.NewUnitOfWork(context.Background())
	user, err := uow.UserRepository().FindOne(context.Background(), specification.ByID{ID: userId})
	require.NoError(t, err)
	require.NotNil(t, user)
	return user.Balance
}

func newAdminFixture(t *testing.T) (IAdminService, ILedgerService, unitofwork.RepositoryFactory) {
	factory := newTestFactory(t)
	ledger := NewLedgerService(factory, testLogger(t))
	svc := NewAdminService(factory, ledger, testLogger(t))
	return svc, ledger, factory
}

func TestAdminSetBalanceGoesThroughLedger(t *testing.T) {
	svc, ledger, factory := newAdminFixture(t)
	user := createTestUser(t, factory, 20)
	ctx := context.Background()

	require.NoError(t, svc.SetBalance(ctx, user.Id, 50))
	assert.Equal(t, 50, currentBalance(t, factory, user.Id))

	rows, _, err := ledger.GetHistory(ctx, user.Id, 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entity.OperationAdmin, rows[0].OperationType)
	assert.Equal(t, 30, rows[0].Amount)
	assert.Equal(t, 50, rows[0].BalanceAfter)

	// Lowering the balance debits the difference.
	require.NoError(t, svc.SetBalance(ctx, user.Id, 15))
	assert.Equal(t, 15, currentBalance(t, factory, user.Id))

	rows, _, err = ledger.GetHistory(ctx, user.Id, 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, -35, rows[0].Amount)

	// Setting the current value again writes nothing.
	require.NoError(t, svc.SetBalance(ctx, user.Id, 15))
	rows, _, err = ledger.GetHistory(ctx, user.Id, 10, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestAdminSetBalanceValidation(t *testing.T) {
	svc, _, factory := newAdminFixture(t)
	user := createTestUser(t, factory, 0)
	ctx := context.Background()

	err := svc.SetBalance(ctx, user.Id, -1)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	err = svc.SetBalance(ctx, uuid.New(), 10)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestAdminSetBanned(t *testing.T) {
	svc, _, factory := newAdminFixture(t)
	user := createTestUser(t, factory, 0)
	ctx := context.Background()

	require.NoError(t, svc.SetBanned(ctx, user.Id, true))

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.BannedUsers)

	require.NoError(t, svc.SetBanned(ctx, user.Id, false))
	stats, err = svc.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.BannedUsers)

	err = svc.SetBanned(ctx, uuid.New(), true)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestAdminListUsers(t *testing.T) {
	svc, _, factory := newAdminFixture(t)
	createTestUser(t, factory, 0)
	createTestUser(t, factory, 0)
	createTestUser(t, factory, 0)
	ctx := context.Background()

	users, total, err := svc.ListUsers(ctx, "", 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, users, 2)
}

func TestAdminStatsCountsGenerations(t *testing.T) {
	svc, _, factory := newAdminFixture(t)
	user := createTestUser(t, factory, 100)
	ctx := context.Background()

	for _, status := range []entity.GenerationStatus{
		entity.GenerationStatusPending,
		entity.GenerationStatusProcessing,
		entity.GenerationStatusFailed,
		entity.GenerationStatusSuccess,
	} {
		gen := &entity.Generation{
			Id:        uuid.New(),
			UserId:    user.Id,
			ModelCode: "nano-banana",
			Type:      entity.GenerationTypeImage,
			Status:    status,
		}
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.GenerationRepository().Create(ctx, gen))
	}

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.TotalGenerations)
	assert.EqualValues(t, 1, stats.PendingGenerations)
	assert.EqualValues(t, 1, stats.ActiveGenerations)
	assert.EqualValues(t, 1, stats.FailedGenerations)
}
