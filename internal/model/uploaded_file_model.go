package model

import (
	"time"

	"github.com/google/uuid"
)

type UploadedFile struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index"`
	URL          string    `gorm:"type:text;not null;index"`
	FileType     string    `gorm:"type:varchar(20);not null"`
	SizeBytes    int64     `gorm:"not null;default:0"`
	DurationSecs float64   `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (UploadedFile) TableName() string {
	return "uploaded_files"
}
