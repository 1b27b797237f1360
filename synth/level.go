package synth

import "github.com/cwbudde/algo-soundscape/dsp/spectrum"

// Level returns the analyser's mean byte magnitude divided by 255, in
// [0, 1]. It is 0 before initialization.
func (e *Engine) Level() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rt == nil {
		return 0
	}

	n, err := e.rt.analyser.ByteFrequencyData(e.bins)
	if err != nil {
		e.log.Error("analyser failed", "err", err)
		return 0
	}

	return spectrum.LevelFromBytes(e.bins[:n])
}
