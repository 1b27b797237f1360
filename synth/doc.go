// Package synth is the real-time voice of the soundscape: an oscillator
// through an amplitude envelope, a resonant lowpass, a feedback delay and
// a convolution reverb, metered by a spectral analyser.
//
// The node graph is declared in topology.json and validated by
// [graph.Compile]. Rendering happens in fixed quanta of [RenderQuantum]
// frames. Oscillator frequency, gains and delay time are automated per
// sample; filter coefficients are refreshed once per quantum.
//
// An [Engine] is driven from one control goroutine while the audio device
// pulls samples through [Engine.Render] on another. Control calls made
// before [Engine.Initialize] succeeds are silently ignored.
package synth
