package reverb

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-soundscape/dsp/conv"
)

// DefaultPartitionSize is the convolver partition length, and therefore
// the reverb latency in samples.
const DefaultPartitionSize = 512

// Stereo convolves a mono input with a two-channel impulse response and
// produces a stereo wet signal. It carries no dry path.
type Stereo struct {
	left, right *conv.Partitioned
	scale       float64
}

// NewStereo creates a reverb from a two-channel impulse response. When
// normalize is set the response is scaled by [NormalizationScale].
func NewStereo(ir [][]float64, sampleRate float64, partSize int, normalize bool) (*Stereo, error) {
	if len(ir) != 2 || len(ir[0]) == 0 || len(ir[0]) != len(ir[1]) {
		return nil, fmt.Errorf("%w: want 2 equal non-empty channels", ErrInvalidImpulse)
	}

	scale := 1.0
	if normalize {
		scale = NormalizationScale(ir, sampleRate)
	}

	kernels := make([][]float64, 2)
	for ch := range kernels {
		kernels[ch] = make([]float64, len(ir[ch]))
		vecmath.ScaleBlock(kernels[ch], ir[ch], scale)
	}

	left, err := conv.NewPartitioned(kernels[0], partSize)
	if err != nil {
		return nil, fmt.Errorf("reverb: failed to create convolution engine: %w", err)
	}

	right, err := conv.NewPartitioned(kernels[1], partSize)
	if err != nil {
		return nil, fmt.Errorf("reverb: failed to create convolution engine: %w", err)
	}

	return &Stereo{left: left, right: right, scale: scale}, nil
}

// Scale returns the normalization gain baked into the kernels.
func (r *Stereo) Scale() float64 {
	return r.scale
}

// Latency returns the reverb latency in samples.
func (r *Stereo) Latency() int {
	return r.left.Latency()
}

// Process convolves in into left and right. All three slices must have
// equal length; in may alias neither output.
func (r *Stereo) Process(left, right, in []float64) error {
	if len(left) != len(in) || len(right) != len(in) {
		return fmt.Errorf("reverb: %w", conv.ErrLengthMismatch)
	}

	if err := r.left.ProcessBlock(left, in); err != nil {
		return fmt.Errorf("reverb: convolution engine: %w", err)
	}

	if err := r.right.ProcessBlock(right, in); err != nil {
		return fmt.Errorf("reverb: convolution engine: %w", err)
	}

	return nil
}

// Reset clears convolution state.
func (r *Stereo) Reset() {
	r.left.Reset()
	r.right.Reset()
}
