package biquad

import (
	"math"

	"github.com/cwbudde/algo-soundscape/dsp/core"
)

// Lowpass designs an RBJ lowpass section at freq (Hz) whose resonance is
// given in dB, the convention of browser audio graphs: the peak above the
// passband is resonanceDB, i.e. the linear Q is 10^(resonanceDB/20).
//
// Frequencies at or beyond Nyquist yield a unity pass-through, and
// non-positive frequencies yield silence.
func Lowpass(freq, resonanceDB, sampleRate float64) Coefficients {
	if sampleRate <= 0 {
		return Coefficients{B0: 1}
	}

	nyquist := sampleRate / 2
	if freq >= nyquist {
		return Coefficients{B0: 1}
	}

	if freq <= 0 {
		return Coefficients{}
	}

	w0 := 2 * math.Pi * freq / sampleRate
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * core.DBToLinear(resonanceDB))

	b0 := (1 - cw) / 2
	b1 := 1 - cw
	b2 := (1 - cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
