package mapper

import (
	"strconv"
	"strings"

	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/model"
)

type AIModelMapper struct{}

func NewAIModelMapper() *AIModelMapper {
	return &AIModelMapper{}
}

func (m *AIModelMapper) ToEntity(a *model.AIModel) *entity.AIModel {
	if a == nil {
		return nil
	}
	return &entity.AIModel{
		Id:               a.Id,
		Code:             a.Code,
		Name:             a.Name,
		Description:      a.Description,
		Provider:         entity.ProviderName(a.Provider),
		ProviderModel:    a.ProviderModel,
		Type:             entity.GenerationType(a.Type),
		Mode:             entity.ModelMode(a.Mode),
		PriceTokens:      a.PriceTokens,
		PricePerSecond:   a.PricePerSecond,
		PriceDisplayMode: entity.PriceDisplayMode(a.PriceDisplayMode),
		RequiresImage:    a.RequiresImage,
		RequiresVideo:    a.RequiresVideo,
		AspectRatios:     splitList(a.AspectRatios),
		Durations:        splitIntList(a.Durations),
		IsEnabled:        a.IsEnabled,
		SortOrder:        a.SortOrder,
		Icon:             a.Icon,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func (m *AIModelMapper) ToModel(a *entity.AIModel) *model.AIModel {
	if a == nil {
		return nil
	}
	return &model.AIModel{
		Id:               a.Id,
		Code:             a.Code,
		Name:             a.Name,
		Description:      a.Description,
		Provider:         string(a.Provider),
		ProviderModel:    a.ProviderModel,
		Type:             string(a.Type),
		Mode:             string(a.Mode),
		PriceTokens:      a.PriceTokens,
		PricePerSecond:   a.PricePerSecond,
		PriceDisplayMode: string(a.PriceDisplayMode),
		RequiresImage:    a.RequiresImage,
		RequiresVideo:    a.RequiresVideo,
		AspectRatios:     joinList(a.AspectRatios),
		Durations:        joinIntList(a.Durations),
		IsEnabled:        a.IsEnabled,
		SortOrder:        a.SortOrder,
		Icon:             a.Icon,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func (m *AIModelMapper) ToEntities(rows []*model.AIModel) []*entity.AIModel {
	entities := make([]*entity.AIModel, len(rows))
	for i, a := range rows {
		entities[i] = m.ToEntity(a)
	}
	return entities
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinList(items []string) string {
	return strings.Join(items, ",")
}

func splitIntList(s string) []int {
	var out []int
	for _, p := range splitList(s) {
		if n, err := strconv.Atoi(p); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func joinIntList(items []int) string {
	parts := make([]string, len(items))
	for i, n := range items {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
