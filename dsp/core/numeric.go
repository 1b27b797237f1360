package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if math.IsNaN(value) {
		return min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Feedback paths decay towards zero forever without it.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// LinearMap maps a normalized value in [0, 1] onto [lo, hi].
// The input is clamped first.
func LinearMap(norm, lo, hi float64) float64 {
	return lo + Clamp(norm, 0, 1)*(hi-lo)
}

// ExpMap maps a normalized value in [0, 1] exponentially onto [lo, hi]:
//
//	lo * (hi/lo)^norm
//
// lo and hi must be > 0. The input is clamped first.
func ExpMap(norm, lo, hi float64) float64 {
	return lo * math.Pow(hi/lo, Clamp(norm, 0, 1))
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}
