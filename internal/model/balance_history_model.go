package model

import (
	"time"

	"github.com/google/uuid"
)

type BalanceHistory struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount        int       `gorm:"not null"`
	BalanceAfter  int       `gorm:"not null"`
	OperationType string    `gorm:"type:varchar(50);not null;index"`
	Description   string    `gorm:"type:text"`
	ReferenceID   *string   `gorm:"type:varchar(255);index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (BalanceHistory) TableName() string {
	return "balance_history"
}
