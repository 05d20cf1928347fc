package entity

import (
	"time"

	"github.com/google/uuid"
)

type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypeVideo FileType = "video"
)

type GalleryItem struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	GenerationId uuid.UUID
	FileURL      string
	FileType     FileType
	IsFavorite   bool
	CreatedAt    time.Time
}
