package contract

import (
	"context"

	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/repository/specification"
)

type UploadedFileRepository interface {
	Create(ctx context.Context, f *entity.UploadedFile) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UploadedFile, error)
	FindByURL(ctx context.Context, url string) (*entity.UploadedFile, error)
}
