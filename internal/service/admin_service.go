package service

import (
	"context"
	"fmt"

	"tg-miniapp-be/internal/dto"
	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/pkg/logger"
	"tg-miniapp-be/internal/repository/specification"
	"tg-miniapp-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAdminService interface {
	ListUsers(ctx context.Context, search string, limit, offset int) ([]*entity.User, int64, error)
	SetBanned(ctx context.Context, userId uuid.UUID, banned bool) error
	// SetBalance moves a user's balance to an absolute value through the
	// ledger, so the adjustment leaves a history row like any other op.
	SetBalance(ctx context.Context, userId uuid.UUID, balance int) error
	GetStats(ctx context.Context) (*dto.AdminStatsResponse, error)
	GetLogs(level string, limit, offset int) ([]logger.LogEntry, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	ledger     ILedgerService
	logger     logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, ledger ILedgerService, log logger.ILogger) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		ledger:     ledger,
		logger:     log,
	}
}

func (s *adminService) ListUsers(ctx context.Context, search string, limit, offset int) ([]*entity.User, int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if search != "" {
		users, err := uow.UserRepository().SearchUsers(ctx, search, limit, offset)
		if err != nil {
			return nil, 0, err
		}
		return users, int64(len(users)), nil
	}

	total, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	users, err := uow.UserRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (s *adminService) SetBanned(ctx context.Context, userId uuid.UUID, banned bool) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return entity.ErrNotFound
	}

	if err := uow.UserRepository().SetBanned(ctx, userId, banned); err != nil {
		return err
	}

	s.logger.Info("Admin", "User ban flag changed", map[string]interface{}{
		"user_id": userId, "banned": banned,
	})
	return nil
}

func (s *adminService) SetBalance(ctx context.Context, userId uuid.UUID, balance int) error {
	if balance < 0 {
		return entity.ErrInvalidInput
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return entity.ErrNotFound
	}

	delta := balance - user.Balance
	if delta == 0 {
		return nil
	}

	desc := fmt.Sprintf("Admin balance adjustment to %d", balance)
	if delta > 0 {
		_, err = s.ledger.Credit(ctx, userId, delta, entity.OperationAdmin, desc, nil)
	} else {
		_, err = s.ledger.Debit(ctx, userId, -delta, entity.OperationAdmin, desc, nil)
	}
	return err
}

func (s *adminService) GetStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	totalUsers, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	bannedUsers, err := uow.UserRepository().Count(ctx, specification.BannedUsers{})
	if err != nil {
		return nil, err
	}

	totalGenerations, err := uow.GenerationRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := uow.GenerationRepository().CountByStatus(ctx, entity.GenerationStatusPending)
	if err != nil {
		return nil, err
	}
	processing, err := uow.GenerationRepository().CountByStatus(ctx, entity.GenerationStatusProcessing)
	if err != nil {
		return nil, err
	}
	failed, err := uow.GenerationRepository().CountByStatus(ctx, entity.GenerationStatusFailed)
	if err != nil {
		return nil, err
	}

	galleryItems, err := uow.GalleryRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AdminStatsResponse{
		TotalUsers:         totalUsers,
		BannedUsers:        bannedUsers,
		TotalGenerations:   totalGenerations,
		PendingGenerations: pending,
		ActiveGenerations:  processing,
		FailedGenerations:  failed,
		TotalGalleryItems:  galleryItems,
	}, nil
}

func (s *adminService) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return s.logger.GetLogs(level, limit, offset)
}
