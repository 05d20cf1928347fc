package entity

import (
	"time"

	"github.com/google/uuid"
)

// UploadedFile records a user upload. DurationSecs is the measured media
// duration for videos (0 for images); motion-control billing reads it back
// instead of trusting a client-supplied value.
type UploadedFile struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	URL          string
	FileType     FileType
	SizeBytes    int64
	DurationSecs float64
	CreatedAt    time.Time
}
