package entity

import (
	"time"

	"github.com/google/uuid"
)

type OperationType string

const (
	OperationDeposit    OperationType = "deposit"
	OperationGeneration OperationType = "generation"
	OperationRefund     OperationType = "refund"
	OperationReferral   OperationType = "referral"
	OperationWelcome    OperationType = "welcome"
	OperationAdmin      OperationType = "admin"
)

// BalanceHistory is an immutable ledger row. Amount is signed (debits are
// negative) and BalanceAfter is the user's balance captured in the same
// transaction that applied the mutation.
type BalanceHistory struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	Amount        int
	BalanceAfter  int
	OperationType OperationType
	Description   string
	ReferenceID   *string
	CreatedAt     time.Time
}
