package contract

import (
	"context"

	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Balance mutations. DebitBalance is a single conditional UPDATE guarded
	// by balance >= amount; it returns entity.ErrInsufficientBalance without
	// touching the row when the guard fails. Both return the balance as it
	// stands after the mutation, read inside the same transaction handle.
	DebitBalance(ctx context.Context, id uuid.UUID, amount int) (int, error)
	CreditBalance(ctx context.Context, id uuid.UUID, amount int) (int, error)

	SetBanned(ctx context.Context, id uuid.UUID, banned bool) error
	SearchUsers(ctx context.Context, query string, limit, offset int) ([]*entity.User, error)
}
