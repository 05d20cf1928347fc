package specification

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

type ByTelegramID struct {
	TelegramID int64
}

func (s ByTelegramID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("telegram_id = ?", s.TelegramID)
}

type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type BannedUsers struct{}

func (s BannedUsers) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_banned = ?", true)
}
