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

type ReferralRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewReferralRepository(db *gorm.DB) contract.ReferralRepository {
	return &ReferralRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *ReferralRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ReferralRepositoryImpl) Create(ctx context.Context, ref *entity.Referral) error {
	m := r.mapper.ReferralToModel(ref)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*ref = *r.mapper.ReferralToEntity(m)
	return nil
}

func (r *ReferralRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Referral, error) {
	var m model.Referral
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ReferralToEntity(&m), nil
}

func (r *ReferralRepositoryImpl) CountByReferrer(ctx context.Context, referrerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Referral{}).
		Where("referrer_id = ?", referrerID).
		Count(&count).Error
	return count, err
}
