package model

import (
	"time"

	"github.com/google/uuid"
)

type Referral struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReferrerId  uuid.UUID `gorm:"type:uuid;not null;index"`
	ReferredId  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	BonusTokens int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Referral) TableName() string {
	return "referrals"
}
