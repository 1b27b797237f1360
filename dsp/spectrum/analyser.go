package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Analyser computes smoothed magnitude spectra of a streaming signal.
// Not safe for concurrent use.
type Analyser struct {
	cfg  AnalyserConfig
	plan *algofft.Plan[complex128]

	ring []float64
	pos  int
	// dirty is set when samples arrived since the last analysis.
	dirty bool

	window   []float64
	frame    []float64
	spec     []complex128
	re, im   []float64
	mag      []float64
	smoothed []float64
}

// NewAnalyser creates an analyser with the default configuration
// modified by opts.
func NewAnalyser(opts ...Option) (*Analyser, error) {
	cfg := AnalyserConfig{
		FFTSize:     DefaultFFTSize,
		Smoothing:   DefaultSmoothing,
		MinDecibels: DefaultMinDecibels,
		MaxDecibels: DefaultMaxDecibels,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	n := cfg.FFTSize
	bins := n / 2

	return &Analyser{
		cfg:      cfg,
		plan:     plan,
		ring:     make([]float64, n),
		window:   blackman(n),
		frame:    make([]float64, n),
		spec:     make([]complex128, n),
		re:       make([]float64, bins),
		im:       make([]float64, bins),
		mag:      make([]float64, bins),
		smoothed: make([]float64, bins),
	}, nil
}

// Config returns the analyser configuration.
func (a *Analyser) Config() AnalyserConfig {
	return a.cfg
}

// FFTSize returns the transform length.
func (a *Analyser) FFTSize() int {
	return a.cfg.FFTSize
}

// FrequencyBinCount returns FFTSize/2.
func (a *Analyser) FrequencyBinCount() int {
	return a.cfg.FFTSize / 2
}

// Write appends samples to the analysis window.
func (a *Analyser) Write(samples []float64) {
	if len(samples) == 0 {
		return
	}

	n := len(a.ring)
	if len(samples) >= n {
		copy(a.ring, samples[len(samples)-n:])
		a.pos = 0
	} else {
		k := copy(a.ring[a.pos:], samples)
		copy(a.ring, samples[k:])
		a.pos = (a.pos + len(samples)) % n
	}

	a.dirty = true
}

// analyse refreshes the smoothed magnitudes if new samples arrived.
func (a *Analyser) analyse() error {
	if !a.dirty {
		return nil
	}

	a.dirty = false

	// Unroll the ring, oldest sample first.
	k := copy(a.frame, a.ring[a.pos:])
	copy(a.frame[k:], a.ring[:a.pos])
	vecmath.MulBlockInPlace(a.frame, a.window)

	for i, x := range a.frame {
		a.spec[i] = complex(x, 0)
	}

	if err := a.plan.Forward(a.spec, a.spec); err != nil {
		return fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	for i := range a.re {
		a.re[i] = real(a.spec[i])
		a.im[i] = imag(a.spec[i])
	}

	vecmath.Magnitude(a.mag, a.re, a.im)

	scale := 1 / float64(a.cfg.FFTSize)
	tc := a.cfg.Smoothing

	for i, m := range a.mag {
		v := tc*a.smoothed[i] + (1-tc)*m*scale
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}

		a.smoothed[i] = v
	}

	return nil
}

// FloatFrequencyData writes the smoothed spectrum in decibels into dst and
// returns the number of bins written.
func (a *Analyser) FloatFrequencyData(dst []float64) (int, error) {
	if err := a.analyse(); err != nil {
		return 0, err
	}

	n := min(len(dst), len(a.smoothed))
	for i := range n {
		dst[i] = linearToDB(a.smoothed[i])
	}

	return n, nil
}

// ByteFrequencyData writes the smoothed spectrum scaled onto 0..255 into
// dst and returns the number of bins written.
func (a *Analyser) ByteFrequencyData(dst []uint8) (int, error) {
	if err := a.analyse(); err != nil {
		return 0, err
	}

	n := min(len(dst), len(a.smoothed))
	for i := range n {
		dst[i] = a.toByte(linearToDB(a.smoothed[i]))
	}

	return n, nil
}

func (a *Analyser) toByte(db float64) uint8 {
	lo, hi := a.cfg.MinDecibels, a.cfg.MaxDecibels

	v := 255 * (db - lo) / (hi - lo)
	switch {
	case !(v > 0):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

// Reset clears the signal history and smoothing state.
func (a *Analyser) Reset() {
	clear(a.ring)
	clear(a.smoothed)
	a.pos = 0
	a.dirty = false
}

// LevelFromBytes returns the mean of a byte spectrum divided by 255, a
// loudness figure in [0, 1]. An empty frame has level 0.
func LevelFromBytes(bins []uint8) float64 {
	if len(bins) == 0 {
		return 0
	}

	var sum int
	for _, b := range bins {
		sum += int(b)
	}

	return float64(sum) / float64(len(bins)) / 255
}
