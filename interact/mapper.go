package interact

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/cwbudde/algo-soundscape/dsp/core"
	"github.com/cwbudde/algo-soundscape/dsp/osc"
	"github.com/cwbudde/algo-soundscape/synth"
)

// Mapping constants.
const (
	MinScale     = 0.5
	MaxScale     = 3.0
	DefaultScale = 1.0
	ScaleStep    = 0.1

	DefaultDelayTime = 0.2
	DefaultReverbMix = 0.3
)

// State is the interaction state owned by a Mapper.
type State struct {
	X, Y     float64 // last pointer position
	Dragging bool
	DragX    float64 // drag origin
	DragY    float64
	Scale    float64
	Shape    Shape
	Waveform osc.Waveform
}

// Result reports how an event was consumed.
type Result struct {
	Handled bool
	// PreventDefault asks the front end to suppress the platform's own
	// handling, e.g. page scrolling for wheel events.
	PreventDefault bool
}

// Mapper applies input events to an Audio engine, a Scene and a UI.
// It is meant for a single control goroutine.
type Mapper struct {
	audio Audio
	scene Scene
	ui    UI
	log   *slog.Logger
	state State
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithLogger sets the logger used for event tracing at Debug level.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mapper) {
		if l != nil {
			m.log = l
		}
	}
}

// New returns a Mapper with the pointer centred and default scale.
func New(audio Audio, scene Scene, ui UI, opts ...Option) *Mapper {
	m := &Mapper{
		audio: audio,
		scene: scene,
		ui:    ui,
		log:   slog.New(slog.DiscardHandler),
		state: State{
			X:        0.5,
			Y:        0.5,
			Scale:    DefaultScale,
			Shape:    Icosahedron,
			Waveform: osc.Sine,
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// State returns a copy of the interaction state.
func (m *Mapper) State() State {
	return m.state
}

// Handle applies one event. Only the toggle path (pointer down, space)
// can fail, with the engine's initialization error.
func (m *Mapper) Handle(ctx context.Context, ev Event) (Result, error) {
	m.log.Debug("input", "kind", ev.Kind, "x", ev.X, "y", ev.Y, "deltaY", ev.DeltaY, "key", ev.Key)

	switch ev.Kind {
	case PointerDown:
		return m.pointerDown(ctx, ev)
	case PointerMove:
		m.pointerMove(ev)
	case PointerUp:
		m.pointerUp()
	case Wheel:
		m.wheel(ev.DeltaY)
		return Result{Handled: true, PreventDefault: true}, nil
	case Key:
		return m.key(ctx, ev.Key)
	default:
		return Result{}, nil
	}

	return Result{Handled: true}, nil
}

// Tick forwards the current audio level to the scene. Call once per
// rendered frame.
func (m *Mapper) Tick() {
	m.scene.SetAudioLevel(m.audio.Level())
}

func (m *Mapper) pointerDown(ctx context.Context, ev Event) (Result, error) {
	x, y := clampUnit(ev.X), clampUnit(ev.Y)

	m.state.X, m.state.Y = x, y
	m.state.Dragging = true
	m.state.DragX, m.state.DragY = x, y

	if err := m.audio.Toggle(ctx); err != nil {
		return Result{Handled: true}, err
	}

	return Result{Handled: true}, nil
}

func (m *Mapper) pointerMove(ev Event) {
	x, y := clampUnit(ev.X), clampUnit(ev.Y)
	m.state.X, m.state.Y = x, y

	m.setParam(synth.ParamFilterFrequency, core.LinearMap(x, 200, 5000))
	m.setParam(synth.ParamFilterQ, core.LinearMap(y, 1, 20))
	m.scene.SetRotation((y-0.5)*2*math.Pi, (x-0.5)*2*math.Pi)

	if !m.state.Dragging {
		return
	}

	dx := x - m.state.DragX
	dy := y - m.state.DragY

	m.setParam(synth.ParamDelayTime, core.Clamp(math.Abs(dx)*0.5, 0, 0.5))
	m.setParam(synth.ParamReverbMix, core.Clamp(math.Abs(dy), 0, 1))

	// Screen y grows downwards, scene y upwards.
	m.scene.SetPosition(dx, -dy)
}

func (m *Mapper) pointerUp() {
	if !m.state.Dragging {
		return
	}

	m.state.Dragging = false
	m.state.DragX, m.state.DragY = 0, 0

	m.setParam(synth.ParamDelayTime, DefaultDelayTime)
	m.setParam(synth.ParamReverbMix, DefaultReverbMix)
	m.scene.SetPosition(0, 0)
}

func (m *Mapper) wheel(deltaY float64) {
	step := ScaleStep
	if deltaY > 0 {
		step = -ScaleStep
	}

	scale := core.Clamp(m.scene.CurrentScale()+step, MinScale, MaxScale)
	m.state.Scale = scale
	m.scene.SetScale(scale)

	norm := (scale - MinScale) / (MaxScale - MinScale)
	m.audio.SetFrequencyFromNormalized(norm)
	m.ui.SetLabel(LabelFrequency, FormatLabel(LabelFrequency, synth.FrequencyFromNormalized(norm)))
}

func (m *Mapper) key(ctx context.Context, key string) (Result, error) {
	if key == KeySpace {
		if err := m.audio.Toggle(ctx); err != nil {
			return Result{Handled: true, PreventDefault: true}, err
		}

		return Result{Handled: true, PreventDefault: true}, nil
	}

	switch k := strings.ToLower(key); k {
	case "1", "2", "3", "4":
		m.selectShape(Shape(k[0] - '1'))
	case "q":
		m.selectWaveform(osc.Sine)
	case "w":
		m.selectWaveform(osc.Square)
	case "e":
		m.selectWaveform(osc.Sawtooth)
	case "r":
		m.selectWaveform(osc.Triangle)
	default:
		return Result{}, nil
	}

	return Result{Handled: true}, nil
}

func (m *Mapper) selectShape(s Shape) {
	m.state.Shape = s
	m.scene.CreateGeometry(s)
	m.ui.SetActive(GroupShape, s.String())
}

func (m *Mapper) selectWaveform(w osc.Waveform) {
	m.state.Waveform = w
	m.audio.SetWaveformSource(w)
	m.ui.SetActive(GroupWave, w.String())
}

// setParam requests a parameter target and updates its readout.
func (m *Mapper) setParam(name string, value float64) {
	m.audio.SetParameter(name, value)

	if id, ok := paramLabels[name]; ok {
		m.ui.SetLabel(id, FormatLabel(id, value))
	}
}

func clampUnit(v float64) float64 {
	return core.Clamp(v, 0, 1)
}
