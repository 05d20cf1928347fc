package mapper

import (
	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/model"
)

type PaymentMapper struct{}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{}
}

func (m *PaymentMapper) ToEntity(p *model.Payment) *entity.Payment {
	if p == nil {
		return nil
	}
	return &entity.Payment{
		Id:            p.Id,
		UserId:        p.UserId,
		Amount:        p.Amount,
		Tokens:        p.Tokens,
		OrderID:       p.OrderID,
		GatewayStatus: p.GatewayStatus,
		RedirectURL:   p.RedirectURL,
		Status:        entity.PaymentStatus(p.Status),
		CreatedAt:     p.CreatedAt,
		PaidAt:        p.PaidAt,
	}
}

func (m *PaymentMapper) ToModel(p *entity.Payment) *model.Payment {
	if p == nil {
		return nil
	}
	return &model.Payment{
		Id:            p.Id,
		UserId:        p.UserId,
		Amount:        p.Amount,
		Tokens:        p.Tokens,
		OrderID:       p.OrderID,
		GatewayStatus: p.GatewayStatus,
		RedirectURL:   p.RedirectURL,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		PaidAt:        p.PaidAt,
	}
}

func (m *PaymentMapper) ToEntities(rows []*model.Payment) []*entity.Payment {
	entities := make([]*entity.Payment, len(rows))
	for i, p := range rows {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
