package contract

import (
	"context"

	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/repository/specification"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error)

	// MarkPaid flips a pending payment to success; returns false when the
	// payment was already settled so a replayed webhook credits nothing.
	MarkPaid(ctx context.Context, orderID, gatewayStatus string) (bool, error)
	MarkFailed(ctx context.Context, orderID, gatewayStatus string, status entity.PaymentStatus) error
}
