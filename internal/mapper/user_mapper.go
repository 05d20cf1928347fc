package mapper

import (
	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:         u.Id,
		TelegramID: u.TelegramID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Balance:    u.Balance,
		IsAdmin:    u.IsAdmin,
		IsBanned:   u.IsBanned,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:         u.Id,
		TelegramID: u.TelegramID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Balance:    u.Balance,
		IsAdmin:    u.IsAdmin,
		IsBanned:   u.IsBanned,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}

func (m *UserMapper) BalanceHistoryToEntity(h *model.BalanceHistory) *entity.BalanceHistory {
	if h == nil {
		return nil
	}
	return &entity.BalanceHistory{
		Id:            h.Id,
		UserId:        h.UserId,
		Amount:        h.Amount,
		BalanceAfter:  h.BalanceAfter,
		OperationType: entity.OperationType(h.OperationType),
		Description:   h.Description,
		ReferenceID:   h.ReferenceID,
		CreatedAt:     h.CreatedAt,
	}
}

func (m *UserMapper) BalanceHistoryToModel(h *entity.BalanceHistory) *model.BalanceHistory {
	if h == nil {
		return nil
	}
	return &model.BalanceHistory{
		Id:            h.Id,
		UserId:        h.UserId,
		Amount:        h.Amount,
		BalanceAfter:  h.BalanceAfter,
		OperationType: string(h.OperationType),
		Description:   h.Description,
		ReferenceID:   h.ReferenceID,
		CreatedAt:     h.CreatedAt,
	}
}

func (m *UserMapper) BalanceHistoryToEntities(rows []*model.BalanceHistory) []*entity.BalanceHistory {
	entities := make([]*entity.BalanceHistory, len(rows))
	for i, h := range rows {
		entities[i] = m.BalanceHistoryToEntity(h)
	}
	return entities
}

func (m *UserMapper) ReferralToEntity(r *model.Referral) *entity.Referral {
	if r == nil {
		return nil
	}
	return &entity.Referral{
		Id:          r.Id,
		ReferrerId:  r.ReferrerId,
		ReferredId:  r.ReferredId,
		BonusTokens: r.BonusTokens,
		CreatedAt:   r.CreatedAt,
	}
}

func (m *UserMapper) ReferralToModel(r *entity.Referral) *model.Referral {
	if r == nil {
		return nil
	}
	return &model.Referral{
		Id:          r.Id,
		ReferrerId:  r.ReferrerId,
		ReferredId:  r.ReferredId,
		BonusTokens: r.BonusTokens,
		CreatedAt:   r.CreatedAt,
	}
}
