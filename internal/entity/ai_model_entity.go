package entity

import (
	"time"

	"github.com/google/uuid"
)

type ProviderName string
type ModelMode string
type PriceDisplayMode string

const (
	ProviderKie  ProviderName = "kie.ai"
	ProviderPoyo ProviderName = "poyo.ai"

	ModeTextToImage   ModelMode = "text-to-image"
	ModeImageToImage  ModelMode = "image-to-image"
	ModeTextToVideo   ModelMode = "text-to-video"
	ModeImageToVideo  ModelMode = "image-to-video"
	ModeMotionControl ModelMode = "motion-control"

	PriceFixed     PriceDisplayMode = "fixed"
	PricePerSecond PriceDisplayMode = "per_second"
)

// AIModel describes one catalog entry. Capability requirements are explicit
// columns so validation dispatches on Mode, never on the model code string.
type AIModel struct {
	Id               uuid.UUID
	Code             string
	Name             string
	Description      string
	Provider         ProviderName
	ProviderModel    string
	Type             GenerationType
	Mode             ModelMode
	PriceTokens      int
	PricePerSecond   float64
	PriceDisplayMode PriceDisplayMode
	RequiresImage    bool
	RequiresVideo    bool
	AspectRatios     []string
	Durations        []int
	IsEnabled        bool
	SortOrder        int
	Icon             *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (m *AIModel) SupportsAspectRatio(ratio string) bool {
	for _, r := range m.AspectRatios {
		if r == ratio {
			return true
		}
	}
	return false
}

func (m *AIModel) SupportsDuration(seconds int) bool {
	if len(m.Durations) == 0 {
		return true
	}
	for _, d := range m.Durations {
		if d == seconds {
			return true
		}
	}
	return false
}

func (m *AIModel) DefaultAspectRatio() string {
	if len(m.AspectRatios) > 0 {
		return m.AspectRatios[0]
	}
	return "1:1"
}
