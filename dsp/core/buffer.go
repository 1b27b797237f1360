package core

// Interleave writes two channels as interleaved float32 frames into dst.
// It returns the number of frames written.
func Interleave(dst []float32, left, right []float64) int {
	n := min(len(dst)/2, len(left), len(right))
	for i := range n {
		dst[2*i] = float32(left[i])
		dst[2*i+1] = float32(right[i])
	}
	return n
}
