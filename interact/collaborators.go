package interact

import (
	"context"

	"github.com/cwbudde/algo-soundscape/dsp/osc"
)

// Scene is the visual collaborator.
type Scene interface {
	SetRotation(x, y float64)
	SetScale(s float64)
	SetPosition(x, y float64)
	CreateGeometry(kind Shape)
	CurrentScale() float64
	SetAudioLevel(level float64)
}

// UI receives presentation-only writes.
type UI interface {
	SetLabel(id LabelID, text string)
	SetActive(group, value string)
}

// Audio is the part of the synth engine driven by input.
type Audio interface {
	Toggle(ctx context.Context) error
	SetParameter(name string, value float64)
	SetFrequencyFromNormalized(v float64)
	SetWaveformSource(w osc.Waveform)
	Level() float64
}
