package dto

import "github.com/google/uuid"

type AdminUserListRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
}

type AdminSetBalanceRequest struct {
	UserId  uuid.UUID `json:"user_id" validate:"required"`
	Balance int       `json:"balance" validate:"min=0"`
}

type AdminBanRequest struct {
	UserId uuid.UUID `json:"user_id" validate:"required"`
	Banned bool      `json:"banned"`
}

type AdminModelPriceRequest struct {
	Code        string `json:"code" validate:"required"`
	PriceTokens int    `json:"price_tokens" validate:"min=0"`
}

type AdminModelEnableRequest struct {
	Code    string `json:"code" validate:"required"`
	Enabled bool   `json:"enabled"`
}

type AdminStatsResponse struct {
	TotalUsers         int64 `json:"total_users"`
	BannedUsers        int64 `json:"banned_users"`
	TotalGenerations   int64 `json:"total_generations"`
	PendingGenerations int64 `json:"pending_generations"`
	ActiveGenerations  int64 `json:"active_generations"`
	FailedGenerations  int64 `json:"failed_generations"`
	TotalGalleryItems  int64 `json:"total_gallery_items"`
}
