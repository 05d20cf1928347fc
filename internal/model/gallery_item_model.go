package model

import (
	"time"

	"github.com/google/uuid"
)

type GalleryItem struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index"`
	GenerationId uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	FileURL      string    `gorm:"type:text;not null"`
	FileType     string    `gorm:"type:varchar(20);not null"`
	IsFavorite   bool      `gorm:"default:false;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
}

func (GalleryItem) TableName() string {
	return "gallery_items"
}
