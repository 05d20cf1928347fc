package implementation

import (
	"context"
	"errors"

	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/mapper"
	"tg-miniapp-be/internal/model"
	"tg-miniapp-be/internal/repository/contract"
	"tg-miniapp-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GalleryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GalleryMapper
}

func NewGalleryRepository(db *gorm.DB) contract.GalleryRepository {
	return &GalleryRepositoryImpl{
		db:     db,
		mapper: mapper.NewGalleryMapper(),
	}
}

func (r *GalleryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GalleryRepositoryImpl) Create(ctx context.Context, item *entity.GalleryItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *GalleryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GalleryItem, error) {
	var m model.GalleryItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *GalleryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GalleryItem, error) {
	var rows []*model.GalleryItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(rows), nil
}

func (r *GalleryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.GalleryItem{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GalleryRepositoryImpl) SetFavorite(ctx context.Context, id uuid.UUID, favorite bool) error {
	return r.db.WithContext(ctx).Model(&model.GalleryItem{}).
		Where("id = ?", id).
		Update("is_favorite", favorite).Error
}

func (r *GalleryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.GalleryItem{}).Error
}
