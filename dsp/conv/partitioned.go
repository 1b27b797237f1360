package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Partitioned is a streaming uniformly partitioned convolver.
//
// The kernel is cut into partitions of partSize samples, each transformed
// once at construction. Input is collected into blocks of partSize; every
// full block is transformed (overlap-save over the last 2*partSize
// samples) and pushed into a frequency-domain delay line. The output block
// is the inverse transform of the sum of delay-line spectra times the
// matching kernel partitions.
//
// The output is the exact linear convolution delayed by Latency() samples.
// Not safe for concurrent use.
type Partitioned struct {
	partSize int
	fftSize  int
	plan     *algofft.Plan[complex128]

	kernelLen int
	kernel    [][]complex128 // per-partition spectra
	fdl       [][]complex128 // input spectra, ring indexed by head
	head      int

	window []complex128 // [previous block | current block]
	accum  []complex128
	inBuf  []float64
	outBuf []float64
	pos    int
}

// NewPartitioned creates a convolver for kernel with partitions of
// partSize samples. partSize must be a power of two.
func NewPartitioned(kernel []float64, partSize int) (*Partitioned, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	if !isPowerOf2(partSize) {
		return nil, fmt.Errorf("%w: %d is not a power of two", ErrInvalidBlockSize, partSize)
	}

	fftSize := 2 * partSize

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	parts := (len(kernel) + partSize - 1) / partSize
	p := &Partitioned{
		partSize:  partSize,
		fftSize:   fftSize,
		plan:      plan,
		kernelLen: len(kernel),
		kernel:    make([][]complex128, parts),
		fdl:       make([][]complex128, parts),
		window:    make([]complex128, fftSize),
		accum:     make([]complex128, fftSize),
		inBuf:     make([]float64, partSize),
		outBuf:    make([]float64, partSize),
	}

	padded := make([]complex128, fftSize)
	for k := range parts {
		clear(padded)

		seg := kernel[k*partSize : min((k+1)*partSize, len(kernel))]
		for i, v := range seg {
			padded[i] = complex(v, 0)
		}

		p.kernel[k] = make([]complex128, fftSize)
		if err := plan.Forward(p.kernel[k], padded); err != nil {
			return nil, fmt.Errorf("conv: failed to compute kernel FFT: %w", err)
		}

		p.fdl[k] = make([]complex128, fftSize)
	}

	return p, nil
}

// Latency returns the delay in samples between input and output.
func (p *Partitioned) Latency() int {
	return p.partSize
}

// PartitionSize returns the partition length in samples.
func (p *Partitioned) PartitionSize() int {
	return p.partSize
}

// KernelLen returns the kernel length.
func (p *Partitioned) KernelLen() int {
	return p.kernelLen
}

// Partitions returns the number of kernel partitions.
func (p *Partitioned) Partitions() int {
	return len(p.kernel)
}

// ProcessBlock convolves src into dst. Any block length is accepted;
// dst and src must have equal length and may alias.
func (p *Partitioned) ProcessBlock(dst, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst %d, src %d", ErrLengthMismatch, len(dst), len(src))
	}

	for i, x := range src {
		dst[i] = p.outBuf[p.pos]
		p.inBuf[p.pos] = x

		p.pos++
		if p.pos == p.partSize {
			p.pos = 0
			if err := p.step(); err != nil {
				return err
			}
		}
	}

	return nil
}

// step transforms the completed input block and refills outBuf.
func (p *Partitioned) step() error {
	n := p.partSize

	// Slide the window: old current half becomes the previous half.
	copy(p.window[:n], p.window[n:])
	for i, x := range p.inBuf {
		p.window[n+i] = complex(x, 0)
	}

	p.head--
	if p.head < 0 {
		p.head = len(p.fdl) - 1
	}

	if err := p.plan.Forward(p.fdl[p.head], p.window); err != nil {
		return fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	clear(p.accum)

	for k, h := range p.kernel {
		x := p.fdl[(p.head+k)%len(p.fdl)]
		for i := range p.accum {
			p.accum[i] += x[i] * h[i]
		}
	}

	if err := p.plan.Inverse(p.accum, p.accum); err != nil {
		return fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	// The first half is circularly aliased; the second half is valid.
	for i := range p.outBuf {
		p.outBuf[i] = real(p.accum[n+i])
	}

	return nil
}

// Reset clears the input history and pending output.
func (p *Partitioned) Reset() {
	for _, s := range p.fdl {
		clear(s)
	}

	clear(p.window)
	clear(p.inBuf)
	clear(p.outBuf)
	p.head = 0
	p.pos = 0
}
