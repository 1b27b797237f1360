// Command soundscape opens a window with a rotating wireframe and a small
// synthesizer played by the pointer, the wheel and the keyboard.
//
// Usage:
//
//	soundscape [flags]
//
// Click or press space to start and stop the sound. Moving the pointer
// sweeps the filter, dragging adds delay and reverb, the wheel scales the
// shape and pitch, 1-4 select a shape and q/w/e/r a waveform. Escape quits.
//
// Build with -tags headless to run without an audio device.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/cwbudde/algo-soundscape/internal/sink"
	"github.com/cwbudde/algo-soundscape/synth"
)

func main() {
	rate := flag.Float64("rate", 44100, "output sample rate in Hz")
	width := flag.Int("width", 960, "initial window width")
	height := flag.Int("height", 640, "initial window height")
	level := flag.String("log-level", "info", "log level: debug, info, warn or error")
	seed := flag.Uint64("seed", 0, "reverb noise seed; 0 picks a random one")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: soundscape [flags]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log, err := newLogger(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(log, *rate, *width, *height, *seed); err != nil {
		log.Error("soundscape failed", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, rate float64, width, height int, seed uint64) error {
	opts := []synth.Option{synth.WithSampleRate(rate), synth.WithLogger(log)}
	if seed != 0 {
		opts = append(opts, synth.WithSeed(seed))
	}

	eng := synth.New(sink.Default(log), opts...)
	defer func() {
		if err := eng.Close(); err != nil {
			log.Warn("closing audio", "err", err)
		}
	}()

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Soundscape")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(newGame(eng, width, height, log))
}

func resolveLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", level)
	}
}

func newLogger(level string) (*slog.Logger, error) {
	l, err := resolveLogLevel(level)
	if err != nil {
		return nil, err
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})), nil
}
