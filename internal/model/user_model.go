package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TelegramID int64     `gorm:"uniqueIndex;not null"`
	Username   *string   `gorm:"type:varchar(255)"`
	FirstName  string    `gorm:"type:varchar(255);not null"`
	LastName   *string   `gorm:"type:varchar(255)"`
	Balance    int       `gorm:"not null;default:0"`
	IsAdmin    bool      `gorm:"default:false"`
	IsBanned   bool      `gorm:"default:false"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
