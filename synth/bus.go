package synth

import "github.com/cwbudde/algo-vecmath"

// bus is one quantum of mono or stereo audio. Mono signals live in l.
type bus struct {
	ch   int
	l, r []float64
}

func newBus(frames int) *bus {
	return &bus{ch: 1, l: make([]float64, frames), r: make([]float64, frames)}
}

func (b *bus) reset(ch int) {
	b.ch = ch
	clear(b.l)
	clear(b.r)
}

// add mixes src into b, up-mixing mono to both channels of a stereo b.
func (b *bus) add(src *bus) {
	vecmath.AddBlockInPlace(b.l, src.l)

	if b.ch == 2 {
		if src.ch == 2 {
			vecmath.AddBlockInPlace(b.r, src.r)
		} else {
			vecmath.AddBlockInPlace(b.r, src.l)
		}
	}
}

func (b *bus) copyFrom(src *bus) {
	b.ch = src.ch
	copy(b.l, src.l)
	copy(b.r, src.r)
}

// mono writes the channel average into dst.
func (b *bus) mono(dst []float64) {
	if b.ch == 1 {
		copy(dst, b.l)
		return
	}

	vecmath.AddBlock(dst, b.l, b.r)
	vecmath.ScaleBlockInPlace(dst, 0.5)
}

func (b *bus) scale(gain float64) {
	vecmath.ScaleBlockInPlace(b.l, gain)
	if b.ch == 2 {
		vecmath.ScaleBlockInPlace(b.r, gain)
	}
}

func (b *bus) mul(gains []float64) {
	vecmath.MulBlockInPlace(b.l, gains)
	if b.ch == 2 {
		vecmath.MulBlockInPlace(b.r, gains)
	}
}
