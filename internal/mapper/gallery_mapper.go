package mapper

import (
	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/model"
)

type GalleryMapper struct{}

func NewGalleryMapper() *GalleryMapper {
	return &GalleryMapper{}
}

func (m *GalleryMapper) ToEntity(g *model.GalleryItem) *entity.GalleryItem {
	if g == nil {
		return nil
	}
	return &entity.GalleryItem{
		Id:           g.Id,
		UserId:       g.UserId,
		GenerationId: g.GenerationId,
		FileURL:      g.FileURL,
		FileType:     entity.FileType(g.FileType),
		IsFavorite:   g.IsFavorite,
		CreatedAt:    g.CreatedAt,
	}
}

func (m *GalleryMapper) ToModel(g *entity.GalleryItem) *model.GalleryItem {
	if g == nil {
		return nil
	}
	return &model.GalleryItem{
		Id:           g.Id,
		UserId:       g.UserId,
		GenerationId: g.GenerationId,
		FileURL:      g.FileURL,
		FileType:     string(g.FileType),
		IsFavorite:   g.IsFavorite,
		CreatedAt:    g.CreatedAt,
	}
}

func (m *GalleryMapper) ToEntities(rows []*model.GalleryItem) []*entity.GalleryItem {
	entities := make([]*entity.GalleryItem, len(rows))
	for i, g := range rows {
		entities[i] = m.ToEntity(g)
	}
	return entities
}

func (m *GalleryMapper) UploadedFileToEntity(f *model.UploadedFile) *entity.UploadedFile {
	if f == nil {
		return nil
	}
	return &entity.UploadedFile{
		Id:           f.Id,
		UserId:       f.UserId,
		URL:          f.URL,
		FileType:     entity.FileType(f.FileType),
		SizeBytes:    f.SizeBytes,
		DurationSecs: f.DurationSecs,
		CreatedAt:    f.CreatedAt,
	}
}

func (m *GalleryMapper) UploadedFileToModel(f *entity.UploadedFile) *model.UploadedFile {
	if f == nil {
		return nil
	}
	return &model.UploadedFile{
		Id:           f.Id,
		UserId:       f.UserId,
		URL:          f.URL,
		FileType:     string(f.FileType),
		SizeBytes:    f.SizeBytes,
		DurationSecs: f.DurationSecs,
		CreatedAt:    f.CreatedAt,
	}
}
