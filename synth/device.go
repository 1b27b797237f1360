package synth

import (
	"context"
	"encoding/binary"
	"io"
	"math"
)

// Device opens an output stream that pulls interleaved float32
// little-endian frames from src.
type Device interface {
	Open(ctx context.Context, sampleRate, channels int, src io.Reader) (Stream, error)
}

// Stream is an open output stream.
type Stream interface {
	Play()
	Close() error
}

const bytesPerFrame = 2 * 4

// reader adapts Engine.Render to the byte stream a device consumes.
type reader struct {
	e       *Engine
	scratch []float32
}

// Read fills p with whole stereo frames.
func (r *reader) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}

	if cap(r.scratch) < 2*frames {
		r.scratch = make([]float32, 2*frames)
	}

	buf := r.scratch[:2*frames]
	r.e.Render(buf)

	for i, v := range buf {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(v))
	}

	return frames * bytesPerFrame, nil
}
