package spectrum

import "math"

// blackman returns periodic Blackman coefficients (alpha 0.16).
func blackman(size int) []float64 {
	const (
		alpha = 0.16
		a0    = 0.5 * (1 - alpha)
		a1    = 0.5
		a2    = 0.5 * alpha
	)

	w := make([]float64, size)
	for i := range w {
		x := float64(i) / float64(size)
		w[i] = a0 - a1*math.Cos(2*math.Pi*x) + a2*math.Cos(4*math.Pi*x)
	}

	return w
}
