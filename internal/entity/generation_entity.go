package entity

import (
	"time"

	"github.com/google/uuid"
)

type GenerationStatus string
type GenerationType string

const (
	GenerationStatusPending    GenerationStatus = "pending"
	GenerationStatusProcessing GenerationStatus = "processing"
	GenerationStatusSuccess    GenerationStatus = "success"
	GenerationStatusFailed     GenerationStatus = "failed"
	GenerationStatusCancelled  GenerationStatus = "cancelled"

	GenerationTypeImage GenerationType = "image"
	GenerationTypeVideo GenerationType = "video"
)

func (s GenerationStatus) IsTerminal() bool {
	switch s {
	case GenerationStatusSuccess, GenerationStatusFailed, GenerationStatusCancelled:
		return true
	}
	return false
}

type Generation struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	ModelCode      string
	Type           GenerationType
	Status         GenerationStatus
	TokensSpent    int // price locked at creation time
	Prompt         *string
	ImageURL       *string
	VideoURL       *string
	AspectRatio    string
	DurationSecs   int
	ProviderTaskID *string
	ResultURL      *string
	ResultFileURL  *string
	ErrorMessage   *string
	CreatedAt      time.Time
	CompletedAt    *time.Time
}
