package contract

import (
	"context"

	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/repository/specification"
)

type AIModelRepository interface {
	Create(ctx context.Context, m *entity.AIModel) error
	Update(ctx context.Context, m *entity.AIModel) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AIModel, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AIModel, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	SetEnabled(ctx context.Context, code string, enabled bool) error
	UpdatePrice(ctx context.Context, code string, priceTokens int) error
}
