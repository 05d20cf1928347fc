package contract

import (
	"context"

	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GenerationRepository interface {
	Create(ctx context.Context, gen *entity.Generation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Generation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Generation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// TransitionStatus is a compare-and-swap: the UPDATE applies only when the
	// row is still in the expected status. Returns false when the row was
	// already moved by a competing writer; the extra column updates are merged
	// into the same statement so transition and payload land atomically.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.GenerationStatus, updates map[string]interface{}) (bool, error)

	SetProviderTask(ctx context.Context, id uuid.UUID, taskID string) error
	CountByStatus(ctx context.Context, status entity.GenerationStatus) (int64, error)
}
