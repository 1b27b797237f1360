package main

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-soundscape/interact"
	"github.com/cwbudde/algo-soundscape/synth"
)

// readouts is the text overlay. It implements interact.UI.
type readouts struct {
	labels map[interact.LabelID]string
	active map[string]string
	status string
}

var labelTitles = map[interact.LabelID]string{
	interact.LabelFrequency:       "Frequency",
	interact.LabelFilterFrequency: "Filter",
	interact.LabelFilterQ:         "Resonance",
	interact.LabelReverb:          "Reverb",
	interact.LabelDelay:           "Delay",
}

var labelParams = map[interact.LabelID]string{
	interact.LabelFrequency:       synth.ParamFrequency,
	interact.LabelFilterFrequency: synth.ParamFilterFrequency,
	interact.LabelFilterQ:         synth.ParamFilterQ,
	interact.LabelReverb:          synth.ParamReverbMix,
	interact.LabelDelay:           synth.ParamDelayTime,
}

// newReadouts seeds every label with its parameter default.
func newReadouts(shape interact.Shape, wave fmt.Stringer) *readouts {
	r := &readouts{
		labels: make(map[interact.LabelID]string),
		active: map[string]string{
			interact.GroupShape: shape.String(),
			interact.GroupWave:  wave.String(),
		},
		status: "click or press space to start",
	}

	defaults := make(map[string]float64)
	for _, s := range synth.ParamSpecs() {
		defaults[s.Name] = s.Default
	}

	for _, id := range interact.Labels() {
		r.labels[id] = interact.FormatLabel(id, defaults[labelParams[id]])
	}

	return r
}

func (r *readouts) SetLabel(id interact.LabelID, text string) { r.labels[id] = text }
func (r *readouts) SetActive(group, value string)             { r.active[group] = value }

func (r *readouts) String() string {
	var b strings.Builder

	for _, id := range interact.Labels() {
		fmt.Fprintf(&b, "%-10s %s\n", labelTitles[id], r.labels[id])
	}

	fmt.Fprintf(&b, "\nshape [1-4] %s\nwave  [qwer] %s\n", r.active[interact.GroupShape], r.active[interact.GroupWave])

	if r.status != "" {
		fmt.Fprintf(&b, "\n%s\n", r.status)
	}

	return b.String()
}
