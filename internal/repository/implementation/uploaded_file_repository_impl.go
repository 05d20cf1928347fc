package implementation

import (
	"context"
	"errors"

	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/mapper"
	"tg-miniapp-be/internal/model"
	"tg-miniapp-be/internal/repository/contract"
	"tg-miniapp-be/internal/repository/specification"

	"gorm.io/gorm"
)

type UploadedFileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GalleryMapper
}

func NewUploadedFileRepository(db *gorm.DB) contract.UploadedFileRepository {
	return &UploadedFileRepositoryImpl{
		db:     db,
		mapper: mapper.NewGalleryMapper(),
	}
}

func (r *UploadedFileRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UploadedFileRepositoryImpl) Create(ctx context.Context, f *entity.UploadedFile) error {
	m := r.mapper.UploadedFileToModel(f)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*f = *r.mapper.UploadedFileToEntity(m)
	return nil
}

func (r *UploadedFileRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UploadedFile, error) {
	var m model.UploadedFile
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.UploadedFileToEntity(&m), nil
}

func (r *UploadedFileRepositoryImpl) FindByURL(ctx context.Context, url string) (*entity.UploadedFile, error) {
	var m model.UploadedFile
	err := r.db.WithContext(ctx).
		Where("url = ?", url).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.UploadedFileToEntity(&m), nil
}
