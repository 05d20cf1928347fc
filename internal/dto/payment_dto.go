package dto

import (
	"time"

	"github.com/google/uuid"
)

type TokenPackageResponse struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Tokens int    `json:"tokens"`
	Price  int64  `json:"price"`
}

type CheckoutRequest struct {
	PackageCode string `json:"package_code" validate:"required"`
}

type CheckoutResponse struct {
	PaymentId   uuid.UUID `json:"payment_id"`
	SnapToken   string    `json:"snap_token"`
	RedirectURL string    `json:"redirect_url"`
}

type PaymentStatusResponse struct {
	Id     uuid.UUID  `json:"id"`
	Status string     `json:"status"`
	Tokens int        `json:"tokens"`
	PaidAt *time.Time `json:"paid_at,omitempty"`
}

type MidtransWebhookRequest struct {
	OrderId           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	FraudStatus       string `json:"fraud_status"`
}
