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

type AIModelRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AIModelMapper
}

func NewAIModelRepository(db *gorm.DB) contract.AIModelRepository {
	return &AIModelRepositoryImpl{
		db:     db,
		mapper: mapper.NewAIModelMapper(),
	}
}

func (r *AIModelRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AIModelRepositoryImpl) Create(ctx context.Context, m *entity.AIModel) error {
	row := r.mapper.ToModel(m)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	*m = *r.mapper.ToEntity(row)
	return nil
}

func (r *AIModelRepositoryImpl) Update(ctx context.Context, m *entity.AIModel) error {
	row := r.mapper.ToModel(m)
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return err
	}
	*m = *r.mapper.ToEntity(row)
	return nil
}

func (r *AIModelRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AIModel, error) {
	var row model.AIModel
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&row), nil
}

func (r *AIModelRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AIModel, error) {
	var rows []*model.AIModel
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(rows), nil
}

func (r *AIModelRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.AIModel{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AIModelRepositoryImpl) SetEnabled(ctx context.Context, code string, enabled bool) error {
	return r.db.WithContext(ctx).Model(&model.AIModel{}).
		Where("code = ?", code).
		Update("is_enabled", enabled).Error
}

func (r *AIModelRepositoryImpl) UpdatePrice(ctx context.Context, code string, priceTokens int) error {
	return r.db.WithContext(ctx).Model(&model.AIModel{}).
		Where("code = ?", code).
		Update("price_tokens", priceTokens).Error
}
