package sink

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/cwbudde/algo-soundscape/synth"
)

// DefaultPeriod is the pull interval of a Null stream.
const DefaultPeriod = 10 * time.Millisecond

const bytesPerSample = 4

// Null consumes streams at real-time rate and discards the audio. It keeps
// the render path and level metering alive on machines without output.
type Null struct {
	period time.Duration
	log    *slog.Logger
}

// NewNull returns a Null device pulling once per period.
func NewNull(period time.Duration, log *slog.Logger) *Null {
	if period <= 0 {
		period = DefaultPeriod
	}

	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Null{period: period, log: log}
}

// Open returns a stream that, once playing, reads one period of frames
// from src per tick.
func (d *Null) Open(ctx context.Context, sampleRate, channels int, src io.Reader) (synth.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if sampleRate <= 0 || channels <= 0 {
		return nil, ErrFormatMismatch
	}

	frames := max(1, int(d.period.Seconds()*float64(sampleRate)))

	return &nullStream{
		src:    src,
		period: d.period,
		buf:    make([]byte, frames*channels*bytesPerSample),
		log:    d.log,
		done:   make(chan struct{}),
	}, nil
}

type nullStream struct {
	src    io.Reader
	period time.Duration
	buf    []byte
	log    *slog.Logger

	once    sync.Once
	closing sync.Once
	done    chan struct{}
	wg      sync.WaitGroup
}

func (s *nullStream) Play() {
	s.once.Do(func() {
		s.wg.Add(1)

		go s.pump()
	})
}

func (s *nullStream) pump() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if _, err := io.ReadFull(s.src, s.buf); err != nil {
				if !errors.Is(err, io.EOF) {
					s.log.Warn("null sink read failed", "err", err)
				}

				return
			}
		}
	}
}

// Close stops the pump and waits for it to exit.
func (s *nullStream) Close() error {
	s.closing.Do(func() { close(s.done) })
	s.wg.Wait()

	return nil
}
