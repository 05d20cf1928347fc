package mapper

import (
	"tg-miniapp-be/internal/dto"
	"tg-miniapp-be/internal/entity"
)

// Response mappers keep the wire shapes out of the services.

func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		Id:         u.Id,
		TelegramID: u.TelegramID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Balance:    u.Balance,
		IsAdmin:    u.IsAdmin,
		CreatedAt:  u.CreatedAt,
	}
}

func ToBalanceHistoryResponse(h *entity.BalanceHistory) *dto.BalanceHistoryResponse {
	if h == nil {
		return nil
	}
	return &dto.BalanceHistoryResponse{
		Id:            h.Id,
		Amount:        h.Amount,
		BalanceAfter:  h.BalanceAfter,
		OperationType: string(h.OperationType),
		Description:   h.Description,
		ReferenceID:   h.ReferenceID,
		CreatedAt:     h.CreatedAt,
	}
}

func ToBalanceHistoryResponses(rows []*entity.BalanceHistory) []*dto.BalanceHistoryResponse {
	out := make([]*dto.BalanceHistoryResponse, len(rows))
	for i, h := range rows {
		out[i] = ToBalanceHistoryResponse(h)
	}
	return out
}

func ToGenerationResponse(g *entity.Generation) *dto.GenerationResponse {
	if g == nil {
		return nil
	}
	return &dto.GenerationResponse{
		Id:            g.Id,
		ModelCode:     g.ModelCode,
		Type:          string(g.Type),
		Status:        string(g.Status),
		TokensSpent:   g.TokensSpent,
		Prompt:        g.Prompt,
		AspectRatio:   g.AspectRatio,
		Duration:      g.DurationSecs,
		ResultURL:     g.ResultURL,
		ResultFileURL: g.ResultFileURL,
		ErrorMessage:  g.ErrorMessage,
		CreatedAt:     g.CreatedAt,
		CompletedAt:   g.CompletedAt,
	}
}

func ToGenerationResponses(rows []*entity.Generation) []*dto.GenerationResponse {
	out := make([]*dto.GenerationResponse, len(rows))
	for i, g := range rows {
		out[i] = ToGenerationResponse(g)
	}
	return out
}

func ToAIModelResponse(m *entity.AIModel) *dto.AIModelResponse {
	if m == nil {
		return nil
	}
	return &dto.AIModelResponse{
		Code:             m.Code,
		Name:             m.Name,
		Description:      m.Description,
		Type:             string(m.Type),
		Mode:             string(m.Mode),
		PriceTokens:      m.PriceTokens,
		PricePerSecond:   m.PricePerSecond,
		PriceDisplayMode: string(m.PriceDisplayMode),
		RequiresImage:    m.RequiresImage,
		RequiresVideo:    m.RequiresVideo,
		AspectRatios:     m.AspectRatios,
		Durations:        m.Durations,
		IsEnabled:        m.IsEnabled,
		Icon:             m.Icon,
	}
}

func ToAIModelResponses(models []*entity.AIModel) []*dto.AIModelResponse {
	out := make([]*dto.AIModelResponse, len(models))
	for i, m := range models {
		out[i] = ToAIModelResponse(m)
	}
	return out
}

func ToGalleryItemResponse(item *entity.GalleryItem) *dto.GalleryItemResponse {
	if item == nil {
		return nil
	}
	return &dto.GalleryItemResponse{
		Id:           item.Id,
		GenerationId: item.GenerationId,
		FileURL:      item.FileURL,
		FileType:     string(item.FileType),
		IsFavorite:   item.IsFavorite,
		CreatedAt:    item.CreatedAt,
	}
}

func ToGalleryItemResponses(items []*entity.GalleryItem) []*dto.GalleryItemResponse {
	out := make([]*dto.GalleryItemResponse, len(items))
	for i, item := range items {
		out[i] = ToGalleryItemResponse(item)
	}
	return out
}

func ToPaymentStatusResponse(p *entity.Payment) *dto.PaymentStatusResponse {
	if p == nil {
		return nil
	}
	return &dto.PaymentStatusResponse{
		Id:     p.Id,
		Status: string(p.Status),
		Tokens: p.Tokens,
		PaidAt: p.PaidAt,
	}
}
