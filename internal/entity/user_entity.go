package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id         uuid.UUID
	TelegramID int64
	Username   *string
	FirstName  string
	LastName   *string
	Balance    int
	IsAdmin    bool
	IsBanned   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (u *User) DisplayName() string {
	if u.Username != nil && *u.Username != "" {
		return "@" + *u.Username
	}
	if u.LastName != nil && *u.LastName != "" {
		return u.FirstName + " " + *u.LastName
	}
	return u.FirstName
}
