package implementation

import (
	"context"

	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/mapper"
	"tg-miniapp-be/internal/model"
	"tg-miniapp-be/internal/repository/contract"
	"tg-miniapp-be/internal/repository/specification"

	"gorm.io/gorm"
)

type BalanceHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewBalanceHistoryRepository(db *gorm.DB) contract.BalanceHistoryRepository {
	return &BalanceHistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *BalanceHistoryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BalanceHistoryRepositoryImpl) Create(ctx context.Context, row *entity.BalanceHistory) error {
	m := r.mapper.BalanceHistoryToModel(row)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*row = *r.mapper.BalanceHistoryToEntity(m)
	return nil
}

func (r *BalanceHistoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BalanceHistory, error) {
	var rows []*model.BalanceHistory
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	return r.mapper.BalanceHistoryToEntities(rows), nil
}

func (r *BalanceHistoryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.BalanceHistory{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
