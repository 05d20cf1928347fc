package contract

import (
	"context"

	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GalleryRepository interface {
	Create(ctx context.Context, item *entity.GalleryItem) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GalleryItem, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GalleryItem, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	SetFavorite(ctx context.Context, id uuid.UUID, favorite bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}
