package spectrum

import (
	"errors"
	"fmt"
)

// Defaults match the analyser behind the level meter.
const (
	DefaultFFTSize     = 512
	DefaultSmoothing   = 0.8
	DefaultMinDecibels = -100.0
	DefaultMaxDecibels = -30.0

	minFFTSize = 32
	maxFFTSize = 32768
)

// Errors returned by [NewAnalyser].
var (
	ErrInvalidFFTSize   = errors.New("spectrum: FFT size must be a power of two in [32, 32768]")
	ErrInvalidSmoothing = errors.New("spectrum: smoothing must be in [0, 1]")
	ErrInvalidRange     = errors.New("spectrum: min decibels must be below max decibels")
)

// AnalyserConfig holds analyser construction parameters.
type AnalyserConfig struct {
	FFTSize     int
	Smoothing   float64
	MinDecibels float64
	MaxDecibels float64
}

// Option mutates an AnalyserConfig.
type Option func(*AnalyserConfig)

// WithFFTSize sets the transform length.
func WithFFTSize(n int) Option {
	return func(cfg *AnalyserConfig) {
		cfg.FFTSize = n
	}
}

// WithSmoothing sets the time-smoothing constant.
func WithSmoothing(k float64) Option {
	return func(cfg *AnalyserConfig) {
		cfg.Smoothing = k
	}
}

// WithDecibelRange sets the range mapped onto byte output.
func WithDecibelRange(minDB, maxDB float64) Option {
	return func(cfg *AnalyserConfig) {
		cfg.MinDecibels = minDB
		cfg.MaxDecibels = maxDB
	}
}

func (cfg AnalyserConfig) validate() error {
	n := cfg.FFTSize
	if n < minFFTSize || n > maxFFTSize || n&(n-1) != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFFTSize, n)
	}

	if !(cfg.Smoothing >= 0 && cfg.Smoothing <= 1) {
		return fmt.Errorf("%w: %v", ErrInvalidSmoothing, cfg.Smoothing)
	}

	if !(cfg.MinDecibels < cfg.MaxDecibels) {
		return fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, cfg.MinDecibels, cfg.MaxDecibels)
	}

	return nil
}
