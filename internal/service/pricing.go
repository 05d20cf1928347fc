package service

import (
	"math"

	"tg-miniapp-be/internal/entity"
)

// BilledSeconds converts a measured media duration into whole billed seconds.
// Standard rounding: 7.4s bills as 7, 7.5s as 8.
func BilledSeconds(measured float64) int {
	return int(math.Round(measured))
}

// Cost returns the token price of one generation. Fixed-price models charge
// PriceTokens regardless of duration; per-second models charge the ceiling of
// rate times billed seconds so fractional rates never undercharge.
func Cost(model *entity.AIModel, durationSecs int) int {
	if model.PriceDisplayMode == entity.PricePerSecond {
		return int(math.Ceil(model.PricePerSecond * float64(durationSecs)))
	}
	return model.PriceTokens
}
