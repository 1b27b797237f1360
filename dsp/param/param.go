package param

import (
	"github.com/cwbudde/algo-soundscape/dsp/core"
)

// Param is a named scalar with range [Min, Max], an instantaneous value and a
// target reached through linear ramps. Param is not safe for concurrent use.
type Param struct {
	name     string
	min, max float64
	def      float64

	value     float64
	target    float64
	step      float64
	remaining int
}

// New returns a parameter at its (clamped) initial value.
func New(name string, min, max, initial float64) *Param {
	if min > max {
		min, max = max, min
	}

	v := core.Clamp(initial, min, max)

	return &Param{
		name:   name,
		min:    min,
		max:    max,
		def:    v,
		value:  v,
		target: v,
	}
}

// Name returns the parameter name.
func (p *Param) Name() string { return p.name }

// Min returns the lower bound.
func (p *Param) Min() float64 { return p.min }

// Max returns the upper bound.
func (p *Param) Max() float64 { return p.max }

// Default returns the initial value the parameter was created with.
func (p *Param) Default() float64 { return p.def }

// Value returns the instantaneous value.
func (p *Param) Value() float64 { return p.value }

// Target returns the value the parameter is ramping to, or the current value
// when no ramp is active.
func (p *Param) Target() float64 { return p.target }

// Ramping reports whether a ramp is in progress.
func (p *Param) Ramping() bool { return p.remaining > 0 }

// Set jumps to v (clamped) immediately and cancels any active ramp.
func (p *Param) Set(v float64) {
	v = core.Clamp(v, p.min, p.max)
	p.value = v
	p.target = v
	p.step = 0
	p.remaining = 0
}

// RampTo schedules a linear ramp from the instantaneous value to target over
// frames frames. The target is clamped first and returned. A non-positive
// frame count behaves like [Param.Set].
func (p *Param) RampTo(target float64, frames int) float64 {
	target = core.Clamp(target, p.min, p.max)
	if frames <= 0 {
		p.Set(target)
		return target
	}

	p.target = target
	p.step = (target - p.value) / float64(frames)
	p.remaining = frames

	return target
}

// Next returns the value for the current frame and advances by one frame.
func (p *Param) Next() float64 {
	v := p.value
	p.advance()

	return v
}

// Fill writes one value per frame into dst, advancing the ramp len(dst) frames.
func (p *Param) Fill(dst []float64) {
	if p.remaining == 0 {
		for i := range dst {
			dst[i] = p.value
		}

		return
	}

	for i := range dst {
		dst[i] = p.Next()
	}
}

// Advance returns the value at the current frame and then skips n frames.
// It is the block-rate counterpart of [Param.Next].
func (p *Param) Advance(n int) float64 {
	v := p.value
	if p.remaining == 0 || n <= 0 {
		return v
	}

	if n >= p.remaining {
		p.value = p.target
		p.step = 0
		p.remaining = 0

		return v
	}

	p.value = core.Clamp(p.value+p.step*float64(n), p.min, p.max)
	p.remaining -= n

	return v
}

func (p *Param) advance() {
	if p.remaining == 0 {
		return
	}

	p.remaining--
	if p.remaining == 0 {
		p.value = p.target
		p.step = 0

		return
	}

	p.value = core.Clamp(p.value+p.step, p.min, p.max)
}
