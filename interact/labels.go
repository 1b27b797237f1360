package interact

import (
	"fmt"

	"github.com/cwbudde/algo-soundscape/synth"
)

// LabelID identifies a UI readout.
type LabelID string

const (
	LabelFrequency       LabelID = "frequency"
	LabelFilterFrequency LabelID = "filter-frequency"
	LabelFilterQ         LabelID = "filter-q"
	LabelReverb          LabelID = "reverb"
	LabelDelay           LabelID = "delay"
)

// Active-button groups.
const (
	GroupShape = "data-shape"
	GroupWave  = "data-wave"
)

// Labels lists every readout in display order.
func Labels() []LabelID {
	return []LabelID{LabelFrequency, LabelFilterFrequency, LabelFilterQ, LabelReverb, LabelDelay}
}

// FormatLabel renders value for the given readout. Frequencies are in Hz,
// the reverb mix in percent and the delay time in milliseconds.
func FormatLabel(id LabelID, value float64) string {
	switch id {
	case LabelFrequency, LabelFilterFrequency:
		return fmt.Sprintf("%.0f Hz", value)
	case LabelFilterQ:
		return fmt.Sprintf("%.1f", value)
	case LabelReverb:
		return fmt.Sprintf("%.0f%%", value*100)
	case LabelDelay:
		return fmt.Sprintf("%.0f ms", value*1000)
	default:
		return fmt.Sprint(value)
	}
}

// paramLabels maps synth parameters to their readouts.
var paramLabels = map[string]LabelID{
	synth.ParamFrequency:       LabelFrequency,
	synth.ParamFilterFrequency: LabelFilterFrequency,
	synth.ParamFilterQ:         LabelFilterQ,
	synth.ParamReverbMix:       LabelReverb,
	synth.ParamDelayTime:       LabelDelay,
}
