package synth

import "github.com/cwbudde/algo-soundscape/dsp/core"

// Render fills dst with interleaved stereo frames. Before initialization
// and after Close it writes silence. A trailing odd sample is zeroed.
func (e *Engine) Render(dst []float32) {
	if len(dst)%2 == 1 {
		dst[len(dst)-1] = 0
		dst = dst[:len(dst)-1]
	}

	for len(dst) > 0 {
		n := e.renderChunk(dst)
		dst = dst[2*n:]
	}
}

// renderChunk delivers up to one quantum of frames under the lock and
// returns the number of frames written.
func (e *Engine) renderChunk(dst []float32) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rt == nil {
		clear(dst)
		return len(dst) / 2
	}

	quantum := e.cfg.proc.BlockSize
	if e.pendPos >= quantum {
		out, err := e.rt.render(e.automated)
		if err != nil {
			e.log.Error("render failed", "err", err)
			out = newBus(quantum)
			out.ch = 2
		}

		e.pending = out
		e.pendPos = 0
	}

	end := min(quantum, e.pendPos+len(dst)/2)
	n := core.Interleave(dst, e.pending.l[e.pendPos:end], e.pending.r[e.pendPos:end])
	e.pendPos += n

	return n
}
