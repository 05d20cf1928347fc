package model

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount        int64     `gorm:"not null"`
	Tokens        int       `gorm:"not null"`
	OrderID       string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	GatewayStatus *string   `gorm:"type:varchar(50)"`
	RedirectURL   *string   `gorm:"type:text"`
	Status        string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	PaidAt        *time.Time
}

func (Payment) TableName() string {
	return "payments"
}
