package main

import (
	"context"
	"errors"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/cwbudde/algo-soundscape/interact"
	"github.com/cwbudde/algo-soundscape/internal/wireframe"
	"github.com/cwbudde/algo-soundscape/synth"
)

var keyBindings = []struct {
	key  ebiten.Key
	name string
}{
	{ebiten.KeySpace, interact.KeySpace},
	{ebiten.KeyDigit1, "1"},
	{ebiten.KeyDigit2, "2"},
	{ebiten.KeyDigit3, "3"},
	{ebiten.KeyDigit4, "4"},
	{ebiten.KeyQ, "q"},
	{ebiten.KeyW, "w"},
	{ebiten.KeyE, "e"},
	{ebiten.KeyR, "r"},
}

var (
	background = color.RGBA{0x0b, 0x0d, 0x14, 0xff}
	quiet      = color.RGBA{0x3a, 0x9c, 0xc8, 0xff}
	loud       = color.RGBA{0xf2, 0xf6, 0xff, 0xff}
)

type game struct {
	engine *synth.Engine
	mapper *interact.Mapper
	model  *wireframe.Model
	ui     *readouts
	log    *slog.Logger

	width, height int
	cursorX       int
	cursorY       int
	touch         interact.TouchTracker
	touches       []ebiten.TouchID
	segments      []wireframe.Segment
}

func newGame(eng *synth.Engine, width, height int, log *slog.Logger) *game {
	model := wireframe.NewModel()
	ui := newReadouts(model.Shape(), eng.Waveform())

	return &game{
		engine: eng,
		mapper: interact.New(eng, model, ui, interact.WithLogger(log)),
		model:  model,
		ui:     ui,
		log:    log,
		width:  width,
		height: height,
	}
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.pollMouse()
	g.pollTouches()

	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			g.dispatch(interact.Event{Kind: interact.Key, Key: b.name})
		}
	}

	g.model.Step()
	g.mapper.Tick()

	return nil
}

func (g *game) pollMouse() {
	mx, my := ebiten.CursorPosition()
	x, y := interact.Normalize(float64(mx), float64(my), float64(g.width), float64(g.height))

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dispatch(interact.Event{Kind: interact.PointerDown, X: x, Y: y})
	}

	if mx != g.cursorX || my != g.cursorY {
		g.cursorX, g.cursorY = mx, my
		g.dispatch(interact.Event{Kind: interact.PointerMove, X: x, Y: y})
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dispatch(interact.Event{Kind: interact.PointerUp, X: x, Y: y})
	}

	// ebiten reports scrolling up as positive.
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.dispatch(interact.Event{Kind: interact.Wheel, DeltaY: -wy})
	}
}

func (g *game) pollTouches() {
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	if ev, ok := g.touch.Update(g.touchPoints(), float64(g.width), float64(g.height)); ok {
		g.dispatch(ev)
	}
}

func (g *game) touchPoints() []interact.Touch {
	points := make([]interact.Touch, 0, len(g.touches))

	for _, id := range g.touches {
		x, y := ebiten.TouchPosition(id)
		points = append(points, interact.Touch{ID: int(id), X: float64(x), Y: float64(y)})
	}

	return points
}

func (g *game) dispatch(ev interact.Event) {
	if _, err := g.mapper.Handle(context.Background(), ev); err != nil {
		if errors.Is(err, synth.ErrInitializing) {
			return
		}

		g.log.Error("audio unavailable", "err", err)
		g.ui.status = "audio unavailable: " + err.Error()

		return
	}

	switch g.engine.State() {
	case synth.Playing:
		g.ui.status = "playing"
	case synth.Stopped:
		g.ui.status = "stopped"
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	level := g.engine.Level()
	clr := mix(quiet, loud, level)
	stroke := float32(1 + 2*level)

	g.segments = g.model.Segments(g.segments[:0], float32(g.width), float32(g.height))
	for _, s := range g.segments {
		vector.StrokeLine(screen, s.X0, s.Y0, s.X1, s.Y1, stroke, clr, true)
	}

	ebitenutil.DebugPrintAt(screen, g.ui.String(), 12, 12)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func mix(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}

	return color.RGBA{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), 0xff}
}
