package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSuccess   PaymentStatus = "success"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

type Payment struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	Amount         int64 // currency units, as charged by the gateway
	Tokens         int
	OrderID        string
	GatewayStatus  *string
	RedirectURL    *string
	Status         PaymentStatus
	CreatedAt      time.Time
	PaidAt         *time.Time
}

type TokenPackage struct {
	Code   string
	Name   string
	Tokens int
	Price  int64
}
