package entity

import (
	"time"

	"github.com/google/uuid"
)

type Referral struct {
	Id          uuid.UUID
	ReferrerId  uuid.UUID
	ReferredId  uuid.UUID
	BonusTokens int
	CreatedAt   time.Time
}
