package synth

import (
	"log/slog"
	"time"

	"github.com/cwbudde/algo-soundscape/dsp/core"
)

// RenderQuantum is the number of frames rendered per graph pass.
const RenderQuantum = 128

// Default ramp windows.
const (
	DefaultParamRamp    = 50 * time.Millisecond
	DefaultEnvelopeRamp = 100 * time.Millisecond
)

type config struct {
	proc         core.ProcessorConfig
	seed         uint64
	seeded       bool
	logger       *slog.Logger
	paramRamp    time.Duration
	envelopeRamp time.Duration
}

// Option configures an [Engine].
type Option func(*config)

// WithSampleRate sets the rendering sample rate in Hz. Non-positive
// values are ignored.
func WithSampleRate(hz float64) Option {
	return func(c *config) {
		core.WithSampleRate(hz)(&c.proc)
	}
}

// WithSeed makes the reverb impulse response deterministic.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}

// WithLogger sets the logger for state transitions and device failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRampWindows overrides the parameter and envelope ramp durations.
// Negative durations are ignored; zero makes changes immediate.
func WithRampWindows(param, envelope time.Duration) Option {
	return func(c *config) {
		if param >= 0 {
			c.paramRamp = param
		}

		if envelope >= 0 {
			c.envelopeRamp = envelope
		}
	}
}

func newConfig(opts []Option) config {
	cfg := config{
		proc:         core.ApplyProcessorOptions(core.WithBlockSize(RenderQuantum)),
		logger:       slog.New(slog.DiscardHandler),
		paramRamp:    DefaultParamRamp,
		envelopeRamp: DefaultEnvelopeRamp,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

func (c config) frames(d time.Duration) int {
	return c.proc.Frames(d.Seconds())
}
