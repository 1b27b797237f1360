package synth

import (
	"github.com/cwbudde/algo-soundscape/dsp/core"
	"github.com/cwbudde/algo-soundscape/dsp/param"
)

// Parameter names accepted by [Engine.SetParameter].
const (
	ParamFrequency       = "frequency"
	ParamFilterFrequency = "filterFrequency"
	ParamFilterQ         = "filterQ"
	ParamReverbMix       = "reverbMix"
	ParamDelayTime       = "delayTime"
)

// paramEnvelope is the internal amplitude envelope; it is not settable
// through SetParameter.
const paramEnvelope = "envelope"

// Envelope gain while playing and while stopped.
const (
	EnvelopeOn  = 0.5
	EnvelopeOff = 0.0
)

// MaxDelayTime is the longest delay time in seconds.
const MaxDelayTime = 0.5

// Frequency bounds of SetFrequencyFromNormalized.
const (
	MinNormalizedFrequency = 110.0
	MaxNormalizedFrequency = 1760.0
)

// ParamSpecs returns the declarations of the user-facing parameters.
// filterQ is the lowpass resonance in dB.
func ParamSpecs() []param.Spec {
	return []param.Spec{
		{Name: ParamFrequency, Min: 50, Max: 2000, Default: 440},
		{Name: ParamFilterFrequency, Min: 200, Max: 5000, Default: 2000},
		{Name: ParamFilterQ, Min: 1, Max: 20, Default: 1},
		{Name: ParamReverbMix, Min: 0, Max: 1, Default: 0.3},
		{Name: ParamDelayTime, Min: 0, Max: MaxDelayTime, Default: 0.2},
	}
}

// FrequencyFromNormalized maps v in [0, 1] exponentially onto
// [110, 1760] Hz, i.e. 110 * 16^v. v is clamped.
func FrequencyFromNormalized(v float64) float64 {
	return core.ExpMap(v, MinNormalizedFrequency, MaxNormalizedFrequency)
}
