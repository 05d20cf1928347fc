package service

import (
	"context"
	"testing"

	"tg-miniapp-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerDebitAndCredit(t *testing.T) {
	factory := newTestFactory(t)
	ledger := NewLedgerService(factory, testLogger(t))
	user := createTestUser(t, factory, 0)
	ctx := context.Background()

	balance, err := ledger.Credit(ctx, user.Id, 100, entity.OperationDeposit, "Token purchase", nil)
	require.NoError(t, err)
	assert.Equal(t, 100, balance)

	balance, err = ledger.Debit(ctx, user.Id, 30, entity.OperationGeneration, "Generation", nil)
	require.NoError(t, err)
	assert.Equal(t, 70, balance)

	rows, total, err := ledger.GetHistory(ctx, user.Id, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, rows, 2)

	// Newest first: the debit row, then the credit row.
	assert.Equal(t, -30, rows[0].Amount)
	assert.Equal(t, 70, rows[0].BalanceAfter)
	assert.Equal(t, entity.OperationGeneration, rows[0].OperationType)
	assert.Equal(t, 100, rows[1].Amount)
	assert.Equal(t, 100, rows[1].BalanceAfter)
}

func TestLedgerDebitInsufficientBalance(t *testing.T) {
	factory := newTestFactory(t)
	ledger := NewLedgerService(factory, testLogger(t))
	user := createTestUser(t, factory, 10)
	ctx := context.Background()

	// Two debits of 8 against a balance of 10: exactly one can win.
	balance, err := ledger.Debit(ctx, user.Id, 8, entity.OperationGeneration, "First", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, balance)

	_, err = ledger.Debit(ctx, user.Id, 8, entity.OperationGeneration, "Second", nil)
	assert.ErrorIs(t, err, entity.ErrInsufficientBalance)

	// The failed debit left no trace: balance and history are untouched.
	reloaded, err := factory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Balance)

	_, total, err := ledger.GetHistory(ctx, user.Id, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestLedgerRejectsNonPositiveAmounts(t *testing.T) {
	factory := newTestFactory(t)
	ledger := NewLedgerService(factory, testLogger(t))
	user := createTestUser(t, factory, 50)
	ctx := context.Background()

	_, err := ledger.Debit(ctx, user.Id, 0, entity.OperationGeneration, "", nil)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	_, err = ledger.Debit(ctx, user.Id, -5, entity.OperationGeneration, "", nil)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	_, err = ledger.Credit(ctx, user.Id, -5, entity.OperationDeposit, "", nil)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestLedgerDebitUnknownUser(t *testing.T) {
	factory := newTestFactory(t)
	ledger := NewLedgerService(factory, testLogger(t))
	ctx := context.Background()

	_, err := ledger.Debit(ctx, createTestUser(t, factory, 5).Id, 3, entity.OperationGeneration, "", nil)
	require.NoError(t, err)

	_, err = ledger.Credit(ctx, uuid.New(), 3, entity.OperationDeposit, "", nil)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
