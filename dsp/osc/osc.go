// Package osc provides a single-voice, band-limited audio oscillator.
package osc

import (
	"fmt"
	"math"
)

// Oscillator is a phase-accumulator oscillator. Square and sawtooth edges
// are smoothed with PolyBLEP residuals; the triangle is obtained by leaky
// integration of the band-limited square.
type Oscillator struct {
	sampleRate float64
	waveform   Waveform
	frequency  float64

	phase    float64 // [0, 1)
	phaseInc float64
	integ    float64 // triangle integrator state, starts at the trough
	running  bool
}

// New returns a stopped oscillator.
func New(sampleRate float64, waveform Waveform, frequency float64) (*Oscillator, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("osc: sample rate must be > 0: %f", sampleRate)
	}
	if !waveform.Valid() {
		return nil, fmt.Errorf("osc: invalid waveform %d", int(waveform))
	}

	o := &Oscillator{sampleRate: sampleRate, waveform: waveform, integ: -1}
	o.SetFrequency(frequency)

	return o, nil
}

// Waveform returns the oscillator shape.
func (o *Oscillator) Waveform() Waveform { return o.waveform }

// Frequency returns the current frequency in Hz.
func (o *Oscillator) Frequency() float64 { return o.frequency }

// SetFrequency sets the frequency in Hz, limited to [0, Nyquist).
func (o *Oscillator) SetFrequency(freq float64) {
	nyquist := 0.5 * o.sampleRate
	if freq < 0 || math.IsNaN(freq) {
		freq = 0
	}
	if freq >= nyquist {
		freq = nyquist * 0.999
	}

	o.frequency = freq
	o.phaseInc = freq / o.sampleRate
}

// Start makes the oscillator produce output.
func (o *Oscillator) Start() { o.running = true }

// Stop silences the oscillator. A stopped oscillator cannot be restarted
// with a different phase; callers create a new one instead.
func (o *Oscillator) Stop() { o.running = false }

// Running reports whether Start has been called without a later Stop.
func (o *Oscillator) Running() bool { return o.running }

// Reset returns the phase to zero.
func (o *Oscillator) Reset() {
	o.phase = 0
	o.integ = -1
}

// ProcessSample returns the next sample in [-1, 1].
func (o *Oscillator) ProcessSample() float64 {
	if !o.running {
		return 0
	}

	t := o.phase
	dt := o.phaseInc

	var y float64
	switch o.waveform {
	case Sine:
		y = math.Sin(2 * math.Pi * t)
	case Square:
		y = square(t, dt)
	case Sawtooth:
		y = 2*t - 1 - polyBLEP(t, dt)
	case Triangle:
		// Integrate the square; 4*dt scales the slope to a unit amplitude.
		o.integ = dt*4*square(t, dt) + (1-dt*0.25)*o.integ
		y = o.integ
	}

	o.phase += dt
	if o.phase >= 1 {
		o.phase -= math.Floor(o.phase)
	}

	return y
}

// ProcessBlock fills dst with consecutive samples at a fixed frequency.
func (o *Oscillator) ProcessBlock(dst []float64) {
	for i := range dst {
		dst[i] = o.ProcessSample()
	}
}

// ProcessBlockFM fills dst using one frequency per frame from freqs.
func (o *Oscillator) ProcessBlockFM(dst, freqs []float64) {
	n := min(len(dst), len(freqs))
	for i := range n {
		o.SetFrequency(freqs[i])
		dst[i] = o.ProcessSample()
	}
}

func square(t, dt float64) float64 {
	y := -1.0
	if t < 0.5 {
		y = 1
	}

	y += polyBLEP(t, dt)

	t2 := t + 0.5
	if t2 >= 1 {
		t2--
	}

	return y - polyBLEP(t2, dt)
}

// polyBLEP returns the two-sample polynomial band-limited step residual for
// a discontinuity at phase 0.
func polyBLEP(t, dt float64) float64 {
	if dt <= 0 {
		return 0
	}

	switch {
	case t < dt:
		t /= dt
		return t + t - t*t - 1
	case t > 1-dt:
		t = (t - 1) / dt
		return t*t + t + t + 1
	default:
		return 0
	}
}
