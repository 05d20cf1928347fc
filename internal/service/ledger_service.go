package service

import (
	"context"
	"time"

	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/pkg/logger"
	"tg-miniapp-be/internal/repository/specification"
	"tg-miniapp-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ILedgerService interface {
	// Debit removes amount tokens and appends the matching history row in one
	// transaction. Amount must be positive; entity.ErrInsufficientBalance means
	// nothing was persisted.
	Debit(ctx context.Context, userId uuid.UUID, amount int, opType entity.OperationType, description string, referenceID *string) (int, error)
	Credit(ctx context.Context, userId uuid.UUID, amount int, opType entity.OperationType, description string, referenceID *string) (int, error)
	GetHistory(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.BalanceHistory, int64, error)
}

type ledgerService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewLedgerService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) ILedgerService {
	return &ledgerService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *ledgerService) Debit(ctx context.Context, userId uuid.UUID, amount int, opType entity.OperationType, description string, referenceID *string) (int, error) {
	if amount <= 0 {
		return 0, entity.ErrInvalidInput
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	newBalance, err := applyDebit(ctx, uow, userId, amount, opType, description, referenceID)
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, err
	}

	s.logger.Info("Ledger", "Debit applied", map[string]interface{}{
		"user_id": userId, "amount": amount, "op": opType, "balance_after": newBalance,
	})
	return newBalance, nil
}

func (s *ledgerService) Credit(ctx context.Context, userId uuid.UUID, amount int, opType entity.OperationType, description string, referenceID *string) (int, error) {
	if amount <= 0 {
		return 0, entity.ErrInvalidInput
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	newBalance, err := applyCredit(ctx, uow, userId, amount, opType, description, referenceID)
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, err
	}

	s.logger.Info("Ledger", "Credit applied", map[string]interface{}{
		"user_id": userId, "amount": amount, "op": opType, "balance_after": newBalance,
	})
	return newBalance, nil
}

func (s *ledgerService) GetHistory(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.BalanceHistory, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.BalanceHistoryRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, 0, err
	}

	rows, err := uow.BalanceHistoryRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// applyDebit and applyCredit are the composable ledger primitives: callers
// that need a balance mutation inside a larger transaction (generation create,
// refund, payment settlement) run them against their own open UoW.

func applyDebit(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, amount int, opType entity.OperationType, description string, referenceID *string) (int, error) {
	newBalance, err := uow.UserRepository().DebitBalance(ctx, userId, amount)
	if err != nil {
		return 0, err
	}

	row := &entity.BalanceHistory{
		Id:            uuid.New(),
		UserId:        userId,
		Amount:        -amount,
		BalanceAfter:  newBalance,
		OperationType: opType,
		Description:   description,
		ReferenceID:   referenceID,
		CreatedAt:     time.Now(),
	}
	if err := uow.BalanceHistoryRepository().Create(ctx, row); err != nil {
		return 0, err
	}

	return newBalance, nil
}

func applyCredit(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, amount int, opType entity.OperationType, description string, referenceID *string) (int, error) {
	newBalance, err := uow.UserRepository().CreditBalance(ctx, userId, amount)
	if err != nil {
		return 0, err
	}

	row := &entity.BalanceHistory{
		Id:            uuid.New(),
		UserId:        userId,
		Amount:        amount,
		BalanceAfter:  newBalance,
		OperationType: opType,
		Description:   description,
		ReferenceID:   referenceID,
		CreatedAt:     time.Now(),
	}
	if err := uow.BalanceHistoryRepository().Create(ctx, row); err != nil {
		return 0, err
	}

	return newBalance, nil
}
