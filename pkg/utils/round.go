package utils

import (
	"math"
)

// Round8 rounds a converted amount to 8 decimal places, the precision
// carried through both conversion endpoints.
func Round8(value float64) float64 {
	return math.Round(value*1e8) / 1e8
}
