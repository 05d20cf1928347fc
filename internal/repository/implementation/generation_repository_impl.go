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

type GenerationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GenerationMapper
}

func NewGenerationRepository(db *gorm.DB) contract.GenerationRepository {
	return &GenerationRepositoryImpl{
		db:     db,
		mapper: mapper.NewGenerationMapper(),
	}
}

func (r *GenerationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GenerationRepositoryImpl) Create(ctx context.Context, gen *entity.Generation) error {
	m := r.mapper.ToModel(gen)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*gen = *r.mapper.ToEntity(m)
	return nil
}

func (r *GenerationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Generation, error) {
	var m model.Generation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *GenerationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Generation, error) {
	var rows []*model.Generation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(rows), nil
}

func (r *GenerationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Generation{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// TransitionStatus performs the state change as a guarded UPDATE. The WHERE
// clause pins the expected prior status, so of two racing writers exactly one
// observes RowsAffected == 1; the loser must treat the row as already settled.
func (r *GenerationRepositoryImpl) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.GenerationStatus, updates map[string]interface{}) (bool, error) {
	values := map[string]interface{}{"status": string(to)}
	for k, v := range updates {
		values[k] = v
	}

	res := r.db.WithContext(ctx).Model(&model.Generation{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(values)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GenerationRepositoryImpl) SetProviderTask(ctx context.Context, id uuid.UUID, taskID string) error {
	return r.db.WithContext(ctx).Model(&model.Generation{}).
		Where("id = ?", id).
		Update("provider_task_id", taskID).Error
}

func (r *GenerationRepositoryImpl) CountByStatus(ctx context.Context, status entity.GenerationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Generation{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	return count, err
}
