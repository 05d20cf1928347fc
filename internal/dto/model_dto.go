package dto

type AIModelResponse struct {
	Code             string   `json:"code"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	Type             string   `json:"type"`
	Mode             string   `json:"mode"`
	PriceTokens      int      `json:"price_tokens"`
	PricePerSecond   float64  `json:"price_per_second,omitempty"`
	PriceDisplayMode string   `json:"price_display_mode"`
	RequiresImage    bool     `json:"requires_image"`
	RequiresVideo    bool     `json:"requires_video"`
	AspectRatios     []string `json:"aspect_ratios,omitempty"`
	Durations        []int    `json:"durations,omitempty"`
	IsEnabled        bool     `json:"is_enabled"`
	Icon             *string  `json:"icon,omitempty"`
}
