package mapper

import (
	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/model"
)

type GenerationMapper struct{}

func NewGenerationMapper() *GenerationMapper {
	return &GenerationMapper{}
}

func (m *GenerationMapper) ToEntity(g *model.Generation) *entity.Generation {
	if g == nil {
		return nil
	}
	return &entity.Generation{
		Id:             g.Id,
		UserId:         g.UserId,
		ModelCode:      g.ModelCode,
		Type:           entity.GenerationType(g.Type),
		Status:         entity.GenerationStatus(g.Status),
		TokensSpent:    g.TokensSpent,
		Prompt:         g.Prompt,
		ImageURL:       g.ImageURL,
		VideoURL:       g.VideoURL,
		AspectRatio:    g.AspectRatio,
		DurationSecs:   g.DurationSecs,
		ProviderTaskID: g.ProviderTaskID,
		ResultURL:      g.ResultURL,
		ResultFileURL:  g.ResultFileURL,
		ErrorMessage:   g.ErrorMessage,
		CreatedAt:      g.CreatedAt,
		CompletedAt:    g.CompletedAt,
	}
}

func (m *GenerationMapper) ToModel(g *entity.Generation) *model.Generation {
	if g == nil {
		return nil
	}
	return &model.Generation{
		Id:             g.Id,
		UserId:         g.UserId,
		ModelCode:      g.ModelCode,
		Type:           string(g.Type),
		Status:         string(g.Status),
		TokensSpent:    g.TokensSpent,
		Prompt:         g.Prompt,
		ImageURL:       g.ImageURL,
		VideoURL:       g.VideoURL,
		AspectRatio:    g.AspectRatio,
		DurationSecs:   g.DurationSecs,
		ProviderTaskID: g.ProviderTaskID,
		ResultURL:      g.ResultURL,
		ResultFileURL:  g.ResultFileURL,
		ErrorMessage:   g.ErrorMessage,
		CreatedAt:      g.CreatedAt,
		CompletedAt:    g.CompletedAt,
	}
}

func (m *GenerationMapper) ToEntities(rows []*model.Generation) []*entity.Generation {
	entities := make([]*entity.Generation, len(rows))
	for i, g := range rows {
		entities[i] = m.ToEntity(g)
	}
	return entities
}
