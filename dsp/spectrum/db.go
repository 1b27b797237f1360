//go:build !fastmath

package spectrum

import "github.com/cwbudde/algo-soundscape/dsp/core"

// linearToDB converts a linear magnitude to decibels. Zero maps to -Inf.
func linearToDB(x float64) float64 {
	return core.LinearToDB(x)
}
