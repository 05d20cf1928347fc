package model

import (
	"time"

	"github.com/google/uuid"
)

// AIModel stores list-valued capability fields (aspect ratios, durations) as
// comma-separated text so the schema stays portable across postgres and the
// sqlite driver used in tests. The mapper owns the split/join.
type AIModel struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code             string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name             string    `gorm:"type:varchar(255);not null"`
	Description      string    `gorm:"type:text"`
	Provider         string    `gorm:"type:varchar(50);not null"`
	ProviderModel    string    `gorm:"type:varchar(255);not null"`
	Type             string    `gorm:"type:varchar(20);not null"`
	Mode             string    `gorm:"type:varchar(50);not null"`
	PriceTokens      int       `gorm:"not null;default:0"`
	PricePerSecond   float64   `gorm:"not null;default:0"`
	PriceDisplayMode string    `gorm:"type:varchar(20);not null;default:'fixed'"`
	RequiresImage    bool      `gorm:"default:false"`
	RequiresVideo    bool      `gorm:"default:false"`
	AspectRatios     string    `gorm:"type:text"`
	Durations        string    `gorm:"type:text"`
	IsEnabled        bool      `gorm:"default:true;index"`
	SortOrder        int       `gorm:"default:0"`
	Icon             *string   `gorm:"type:text"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (AIModel) TableName() string {
	return "ai_models"
}
