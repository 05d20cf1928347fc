package model

import (
	"time"

	"github.com/google/uuid"
)

type Generation struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index"`
	ModelCode      string    `gorm:"type:varchar(100);not null"`
	Type           string    `gorm:"type:varchar(20);not null"`
	Status         string    `gorm:"type:varchar(20);not null;index"`
	TokensSpent    int       `gorm:"not null"`
	Prompt         *string   `gorm:"type:text"`
	ImageURL       *string   `gorm:"type:text"`
	VideoURL       *string   `gorm:"type:text"`
	AspectRatio    string    `gorm:"type:varchar(20)"`
	DurationSecs   int       `gorm:"default:0"`
	ProviderTaskID *string   `gorm:"type:varchar(255);index"`
	ResultURL      *string   `gorm:"type:text"`
	ResultFileURL  *string   `gorm:"type:text"`
	ErrorMessage   *string   `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
	CompletedAt    *time.Time
}

func (Generation) TableName() string {
	return "generations"
}
