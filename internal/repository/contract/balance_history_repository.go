package contract

import (
	"context"

	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/repository/specification"
)

type BalanceHistoryRepository interface {
	Create(ctx context.Context, row *entity.BalanceHistory) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BalanceHistory, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
