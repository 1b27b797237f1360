//go:build !headless

package sink

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-soundscape/synth"
)

// DefaultBufferSize is the device buffer requested from oto.
const DefaultBufferSize = 40 * time.Millisecond

// Oto plays streams through the platform audio API. oto allows a single
// context per process, so the first Open fixes the stream format and
// later opens must match it.
type Oto struct {
	mu         sync.Mutex
	ctx        *oto.Context
	ready      chan struct{}
	rate       int
	channels   int
	bufferSize time.Duration
	log        *slog.Logger
}

// NewOto returns an unopened oto device.
func NewOto(bufferSize time.Duration, log *slog.Logger) *Oto {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Oto{bufferSize: bufferSize, log: log}
}

// Default returns the platform device.
func Default(log *slog.Logger) synth.Device {
	return NewOto(DefaultBufferSize, log)
}

// Open creates the oto context on first use, waits until the driver is
// ready or ctx ends, and returns a player pulling float32 frames from src.
func (d *Oto) Open(ctx context.Context, sampleRate, channels int, src io.Reader) (synth.Stream, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ctx == nil {
		octx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatFloat32LE,
			BufferSize:   d.bufferSize,
		})
		if err != nil {
			return nil, err
		}

		d.ctx, d.ready = octx, ready
		d.rate, d.channels = sampleRate, channels
		d.log.Info("audio context created", "rate", sampleRate, "channels", channels, "buffer", d.bufferSize)
	} else if sampleRate != d.rate || channels != d.channels {
		return nil, fmt.Errorf("%w: have %d Hz x%d, want %d Hz x%d",
			ErrFormatMismatch, d.rate, d.channels, sampleRate, channels)
	}

	select {
	case <-d.ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if err := d.ctx.Err(); err != nil {
		return nil, err
	}

	return &otoStream{player: d.ctx.NewPlayer(src)}, nil
}

type otoStream struct {
	player *oto.Player
}

func (s *otoStream) Play() { s.player.Play() }

func (s *otoStream) Close() error { return s.player.Close() }
