package implementation

import (
	"context"
	"errors"
	"time"

	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/mapper"
	"tg-miniapp-be/internal/model"
	"tg-miniapp-be/internal/repository/contract"
	"tg-miniapp-be/internal/repository/specification"

	"gorm.io/gorm"
)

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentMapper
}

func NewPaymentRepository(db *gorm.DB) contract.PaymentRepository {
	return &PaymentRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentMapper(),
	}
}

func (r *PaymentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, p *entity.Payment) error {
	m := r.mapper.ToModel(p)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*p = *r.mapper.ToEntity(m)
	return nil
}

func (r *PaymentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error) {
	var m model.Payment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *PaymentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error) {
	var rows []*model.Payment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(rows), nil
}

// MarkPaid is guarded on the pending status so a replayed settlement webhook
// can never double-credit.
func (r *PaymentRepositoryImpl) MarkPaid(ctx context.Context, orderID, gatewayStatus string) (bool, error) {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("order_id = ? AND status = ?", orderID, string(entity.PaymentStatusPending)).
		Updates(map[string]interface{}{
			"status":         string(entity.PaymentStatusSuccess),
			"gateway_status": gatewayStatus,
			"paid_at":        now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PaymentRepositoryImpl) MarkFailed(ctx context.Context, orderID, gatewayStatus string, status entity.PaymentStatus) error {
	return r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("order_id = ? AND status = ?", orderID, string(entity.PaymentStatusPending)).
		Updates(map[string]interface{}{
			"status":         string(status),
			"gateway_status": gatewayStatus,
		}).Error
}
