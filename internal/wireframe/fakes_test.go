package wireframe

import (
	"context"

	"github.com/cwbudde/algo-soundscape/dsp/osc"
	"github.com/cwbudde/algo-soundscape/interact"
)

type nopAudio struct{}

func (nopAudio) Toggle(context.Context) error       { return nil }
func (nopAudio) SetParameter(string, float64)       {}
func (nopAudio) SetFrequencyFromNormalized(float64) {}
func (nopAudio) SetWaveformSource(osc.Waveform)     {}
func (nopAudio) Level() float64                     { return 0 }

type nopUI struct{}

func (nopUI) SetLabel(interact.LabelID, string) {}
func (nopUI) SetActive(string, string)          {}
