//go:build fastmath

package spectrum

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

const ln10 = 2.302585092994045684017991454684

// linearToDB converts a linear magnitude to decibels using a fast log
// approximation. Zero maps to -Inf.
func linearToDB(x float64) float64 {
	if x <= 0 {
		return math.Inf(-1)
	}

	return 20 * approx.FastLog(x) / ln10
}
