package synth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cwbudde/algo-soundscape/dsp/osc"
	"github.com/cwbudde/algo-soundscape/dsp/param"
)

// Engine owns the voice graph, its parameters and the output device.
type Engine struct {
	cfg    config
	device Device
	log    *slog.Logger

	mu           sync.Mutex
	state        PlaybackState
	initializing bool
	closed       bool
	waveform     osc.Waveform
	store        *param.Store
	env          *param.Param
	automated    []*param.Param
	rt           *runtime
	stream       Stream

	// Rendered but not yet delivered frames of the current quantum.
	pending *bus
	pendPos int

	bins []uint8
}

// New returns an uninitialized engine that will play through device.
func New(device Device, opts ...Option) *Engine {
	cfg := newConfig(opts)

	store := param.MustStore(ParamSpecs()...)
	env := param.New(paramEnvelope, 0, 1, EnvelopeOff)

	automated := make([]*param.Param, 0, len(store.Names())+1)
	for _, name := range store.Names() {
		p, _ := store.Get(name)
		automated = append(automated, p)
	}

	automated = append(automated, env)

	return &Engine{
		cfg:       cfg,
		device:    device,
		log:       cfg.logger,
		waveform:  osc.Sine,
		store:     store,
		env:       env,
		automated: automated,
		pendPos:   cfg.proc.BlockSize,
	}
}

// SampleRate returns the rendering sample rate.
func (e *Engine) SampleRate() float64 {
	return e.cfg.proc.SampleRate
}

// State returns the playback state.
func (e *Engine) State() PlaybackState {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// Waveform returns the selected oscillator shape. The preference is kept
// even before initialization.
func (e *Engine) Waveform() osc.Waveform {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.waveform
}

// Initialize acquires the output device and builds the voice graph. It is
// idempotent once it has succeeded. A concurrent call while another
// initialization is in flight returns ErrInitializing. On failure the
// engine stays Uninitialized and a later call may retry.
func (e *Engine) Initialize(ctx context.Context) error {
	e.mu.Lock()

	switch {
	case e.closed:
		e.mu.Unlock()
		return ErrClosed
	case e.state != Uninitialized:
		e.mu.Unlock()
		return nil
	case e.initializing:
		e.mu.Unlock()
		return ErrInitializing
	}

	e.initializing = true
	waveform := e.waveform
	e.mu.Unlock()

	stream, rt, err := e.acquire(ctx, waveform)

	e.mu.Lock()
	e.initializing = false

	if err != nil {
		e.mu.Unlock()
		e.log.Error("audio initialization failed", "err", err)

		return err
	}

	if e.closed {
		e.mu.Unlock()

		if cerr := stream.Close(); cerr != nil {
			e.log.Warn("closing device opened during Close", "err", cerr)
		}

		return ErrClosed
	}

	// A waveform chosen while the device was opening wins.
	if e.waveform != waveform {
		e.swapOscillator(rt, e.waveform)
	}

	e.store.Reset()
	e.env.Set(EnvelopeOff)
	rt.osc.osc.SetFrequency(e.frequencyParam().Value())
	rt.osc.osc.Start()

	e.rt = rt
	e.stream = stream
	e.bins = make([]uint8, rt.analyser.FrequencyBinCount())
	e.setState(Stopped)
	e.mu.Unlock()

	// The device pulls through Render, which takes e.mu.
	stream.Play()

	return nil
}

func (e *Engine) acquire(ctx context.Context, waveform osc.Waveform) (Stream, *runtime, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("synth: open device: %w: %w", ErrDeviceUnavailable, err)
	}

	stream, err := e.device.Open(ctx, int(e.cfg.proc.SampleRate), 2, &reader{e: e})
	if err != nil {
		return nil, nil, fmt.Errorf("synth: open device: %w: %w", ErrDeviceUnavailable, err)
	}

	rt, err := newRuntime(e.cfg, waveform, e.automated)
	if err != nil {
		if cerr := stream.Close(); cerr != nil {
			e.log.Warn("closing device after failed graph build", "err", cerr)
		}

		return nil, nil, err
	}

	return stream, rt, nil
}

// Start opens the envelope. No-op before initialization.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.start()
}

// Stop closes the envelope. No-op before initialization.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stop()
}

func (e *Engine) start() {
	if e.state == Uninitialized {
		return
	}

	e.env.RampTo(EnvelopeOn, e.cfg.frames(e.cfg.envelopeRamp))
	e.setState(Playing)
}

func (e *Engine) stop() {
	if e.state == Uninitialized {
		return
	}

	e.env.RampTo(EnvelopeOff, e.cfg.frames(e.cfg.envelopeRamp))
	e.setState(Stopped)
}

// Toggle initializes the engine if needed and then flips between playing
// and stopped. Only device acquisition errors are returned.
func (e *Engine) Toggle(ctx context.Context) error {
	if err := e.Initialize(ctx); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Playing {
		e.stop()
	} else {
		e.start()
	}

	return nil
}

// SetParameter ramps the named parameter to value, clamped to its range,
// over the parameter ramp window. Unknown names and calls before
// initialization are ignored.
func (e *Engine) SetParameter(name string, value float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Uninitialized {
		return
	}

	if _, ok := e.store.RampTo(name, value, e.cfg.frames(e.cfg.paramRamp)); !ok {
		e.log.Debug("ignoring unknown parameter", "name", name)
	}
}

// SetFrequencyFromNormalized sets the oscillator frequency to
// 110 * 16^v for v clamped to [0, 1].
func (e *Engine) SetFrequencyFromNormalized(v float64) {
	e.SetParameter(ParamFrequency, FrequencyFromNormalized(v))
}

// Parameter returns the instantaneous value of the named parameter.
func (e *Engine) Parameter(name string) (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.store.Get(name)
	if !ok {
		return 0, false
	}

	return p.Value(), true
}

// Target returns the value the named parameter is ramping to.
func (e *Engine) Target(name string) (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.store.Get(name)
	if !ok {
		return 0, false
	}

	return p.Target(), true
}

// SetWaveformSource selects the oscillator shape. When the graph exists
// the oscillator is replaced at the next quantum boundary, keeping its
// frequency.
func (e *Engine) SetWaveformSource(w osc.Waveform) {
	if !w.Valid() {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.waveform = w
	if e.rt != nil {
		e.swapOscillator(e.rt, w)
	}
}

func (e *Engine) swapOscillator(rt *runtime, w osc.Waveform) {
	old := rt.osc.osc

	next, err := osc.New(e.cfg.proc.SampleRate, w, old.Frequency())
	if err != nil {
		e.log.Error("replacing oscillator", "err", err)
		return
	}

	if old.Running() {
		next.Start()
	}

	rt.osc.osc = next
}

func (e *Engine) frequencyParam() *param.Param {
	p, _ := e.store.Get(ParamFrequency)
	return p
}

// Close releases the output device. The engine renders silence afterwards.
func (e *Engine) Close() error {
	e.mu.Lock()

	if e.closed {
		e.mu.Unlock()
		return nil
	}

	e.closed = true
	e.rt = nil
	stream := e.stream
	e.stream = nil
	e.mu.Unlock()

	if stream == nil {
		return nil
	}

	// Outside the lock: closing may wait for a Render in flight.
	if err := stream.Close(); err != nil {
		return fmt.Errorf("synth: close device: %w", err)
	}

	return nil
}

func (e *Engine) setState(s PlaybackState) {
	if e.state == s {
		return
	}

	e.log.Debug("playback state", "from", e.state, "to", s)
	e.state = s
}
