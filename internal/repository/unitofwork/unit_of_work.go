package unitofwork

import (
	"context"

	"tg-miniapp-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	BalanceHistoryRepository() contract.BalanceHistoryRepository
	GenerationRepository() contract.GenerationRepository
	AIModelRepository() contract.AIModelRepository
	GalleryRepository() contract.GalleryRepository
	PaymentRepository() contract.PaymentRepository
	ReferralRepository() contract.ReferralRepository
	UploadedFileRepository() contract.UploadedFileRepository
}
