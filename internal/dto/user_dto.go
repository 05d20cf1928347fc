package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	Id         uuid.UUID `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Username   *string   `json:"username,omitempty"`
	FirstName  string    `json:"first_name"`
	LastName   *string   `json:"last_name,omitempty"`
	Balance    int       `json:"balance"`
	IsAdmin    bool      `json:"is_admin"`
	CreatedAt  time.Time `json:"created_at"`
}

type BalanceHistoryResponse struct {
	Id            uuid.UUID `json:"id"`
	Amount        int       `json:"amount"`
	BalanceAfter  int       `json:"balance_after"`
	OperationType string    `json:"operation_type"`
	Description   string    `json:"description"`
	ReferenceID   *string   `json:"reference_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type BalanceHistoryListResponse struct {
	Items []*BalanceHistoryResponse `json:"items"`
	Total int64                     `json:"total"`
}

type ReferralInfoResponse struct {
	ReferralLink  string `json:"referral_link"`
	ReferredCount int64  `json:"referred_count"`
	BonusPerUser  int    `json:"bonus_per_user"`
}
