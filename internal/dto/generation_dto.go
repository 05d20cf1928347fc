package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateGenerationRequest struct {
	ModelCode   string `json:"model_code" validate:"required"`
	Prompt      string `json:"prompt" validate:"max=4000"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	VideoURL    string `json:"video_url" validate:"omitempty,url"`
	AspectRatio string `json:"aspect_ratio"`
	Duration    int    `json:"duration" validate:"omitempty,min=1,max=60"`
}

type GenerationResponse struct {
	Id            uuid.UUID  `json:"id"`
	ModelCode     string     `json:"model_code"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	TokensSpent   int        `json:"tokens_spent"`
	Prompt        *string    `json:"prompt,omitempty"`
	AspectRatio   string     `json:"aspect_ratio,omitempty"`
	Duration      int        `json:"duration,omitempty"`
	ResultURL     *string    `json:"result_url,omitempty"`
	ResultFileURL *string    `json:"result_file_url,omitempty"`
	ErrorMessage  *string    `json:"error_message,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

type GenerationListResponse struct {
	Items []*GenerationResponse `json:"items"`
	Total int64                 `json:"total"`
}

// PublishGenerationMessage is the payload queued for the background worker.
type PublishGenerationMessage struct {
	GenerationId uuid.UUID `json:"generation_id"`
}
