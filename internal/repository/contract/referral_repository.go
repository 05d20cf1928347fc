package contract

import (
	"context"

	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ReferralRepository interface {
	Create(ctx context.Context, r *entity.Referral) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Referral, error)
	CountByReferrer(ctx context.Context, referrerID uuid.UUID) (int64, error)
}
