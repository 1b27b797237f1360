package delay

import (
	"errors"
	"fmt"
	"math"
)

// guard is the number of extra slots kept beyond the longest delay so the
// interpolator always has its neighbours.
const guard = 4

// ErrInvalidSize is returned for non-positive buffer sizes.
var ErrInvalidSize = errors.New("delay: invalid size")

// Line is a circular delay line.
//
// Offsets are measured from the most recently written sample: Read(0)
// returns the sample passed to the last Write.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line holding size samples.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	return &Line{buffer: make([]float64, size)}, nil
}

// NewSeconds returns a delay line able to delay up to maxSeconds at
// sampleRate.
func NewSeconds(maxSeconds, sampleRate float64) (*Line, error) {
	if maxSeconds < 0 || sampleRate <= 0 || math.IsNaN(maxSeconds) {
		return nil, fmt.Errorf("%w: %v s at %v Hz", ErrInvalidSize, maxSeconds, sampleRate)
	}

	return New(int(math.Ceil(maxSeconds*sampleRate)) + guard)
}

// Len returns the internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// MaxDelay returns the longest fractional delay in samples that
// ReadFractional honours.
func (d *Line) MaxDelay() float64 {
	return float64(max(len(d.buffer)-3, 0))
}

// Write pushes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample

	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read returns the sample written delay writes ago.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	delay = min(max(delay, 0), size-1)

	pos := d.writePos - 1 - delay
	if pos < 0 {
		pos += size
	}

	return d.buffer[pos]
}

// ReadFractional reads with cubic Hermite interpolation. The delay is
// clamped to [0, MaxDelay].
func (d *Line) ReadFractional(delay float64) float64 {
	if !(delay > 0) {
		return d.Read(0)
	}

	delay = min(delay, d.MaxDelay())

	p := int(delay)
	t := delay - float64(p)

	xm1 := d.Read(max(p-1, 0))
	x0 := d.Read(p)
	x1 := d.Read(p + 1)
	x2 := d.Read(p + 2)

	return hermite4(t, xm1, x0, x1, x2)
}

// ProcessSample writes x and returns the sample delayed by delay samples.
func (d *Line) ProcessSample(x, delay float64) float64 {
	d.Write(x)
	return d.ReadFractional(delay)
}

// ProcessBlock delays buf in place with a per-sample delay in samples.
// delays must be at least as long as buf.
func (d *Line) ProcessBlock(buf, delays []float64) {
	for i, x := range buf {
		buf[i] = d.ProcessSample(x, delays[i])
	}
}

// Reset clears line state.
func (d *Line) Reset() {
	clear(d.buffer)
	d.writePos = 0
}
