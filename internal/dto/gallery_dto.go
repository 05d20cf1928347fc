package dto

import (
	"time"

	"github.com/google/uuid"
)

type GalleryItemResponse struct {
	Id           uuid.UUID `json:"id"`
	GenerationId uuid.UUID `json:"generation_id"`
	FileURL      string    `json:"file_url"`
	FileType     string    `json:"file_type"`
	IsFavorite   bool      `json:"is_favorite"`
	CreatedAt    time.Time `json:"created_at"`
}

type GalleryListResponse struct {
	Items []*GalleryItemResponse `json:"items"`
	Total int64                  `json:"total"`
}

type UploadResponse struct {
	URL      string  `json:"url"`
	FileType string  `json:"file_type"`
	Duration float64 `json:"duration,omitempty"`
}

type Base64UploadRequest struct {
	Data     string `json:"data" validate:"required"`
	Filename string `json:"filename" validate:"required"`
}
