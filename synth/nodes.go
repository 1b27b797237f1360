package synth

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/cwbudde/algo-soundscape/dsp/delay"
	"github.com/cwbudde/algo-soundscape/dsp/filter/biquad"
	"github.com/cwbudde/algo-soundscape/dsp/graph"
	"github.com/cwbudde/algo-soundscape/dsp/osc"
	"github.com/cwbudde/algo-soundscape/dsp/reverb"
	"github.com/cwbudde/algo-soundscape/dsp/spectrum"
)

var errUnknownNodeType = errors.New("synth: unknown node type")

// processor renders one quantum. in holds the summed inputs and may be
// modified; out receives the node output.
type processor interface {
	process(a *automation, in, out *bus) error
}

// buildContext carries what node factories need.
type buildContext struct {
	cfg      config
	waveform osc.Waveform
	rt       *runtime
}

type factory func(ctx *buildContext, n graph.Node) (processor, error)

var factories = map[string]factory{
	"oscillator": newOscNode,
	"gain":       newGainNode,
	"lowpass":    newLowpassNode,
	"delay":      newDelayNode,
	"sum":        newSumNode,
	"convolver":  newConvolverNode,
	"analyser":   newAnalyserNode,
	"output":     newOutputNode,
}

// oscNode is the sound source. The oscillator is replaced on waveform
// changes; the node itself stays wired.
type oscNode struct {
	osc *osc.Oscillator
}

func newOscNode(ctx *buildContext, _ graph.Node) (processor, error) {
	o, err := osc.New(ctx.cfg.proc.SampleRate, ctx.waveform, 440)
	if err != nil {
		return nil, err
	}

	n := &oscNode{osc: o}
	ctx.rt.osc = n

	return n, nil
}

func (n *oscNode) process(a *automation, _, out *bus) error {
	out.ch = 1
	n.osc.ProcessBlockFM(out.l, a.values[ParamFrequency])

	return nil
}

// gainNode applies a fixed gain or one automated by a parameter.
type gainNode struct {
	gain    float64
	param   string
	invert  bool
	scratch []float64
}

func newGainNode(ctx *buildContext, n graph.Node) (processor, error) {
	g := &gainNode{
		gain:   1,
		param:  n.Str["param"],
		invert: n.Num["invert"] != 0,
	}

	if v, ok := n.Num["gain"]; ok {
		g.gain = v
	}

	if g.param != "" {
		g.scratch = make([]float64, ctx.cfg.proc.BlockSize)
	}

	return g, nil
}

func (g *gainNode) process(a *automation, in, out *bus) error {
	out.copyFrom(in)

	if g.param == "" {
		out.scale(g.gain)
		return nil
	}

	values, ok := a.values[g.param]
	if !ok {
		return fmt.Errorf("synth: gain bound to unknown parameter %q", g.param)
	}

	gains := values
	if g.invert {
		for i, v := range values {
			g.scratch[i] = 1 - v
		}

		gains = g.scratch
	}

	out.mul(gains)

	return nil
}

// lowpassNode is a resonant lowpass with coefficients updated per quantum.
type lowpassNode struct {
	sampleRate float64
	sections   [2]*biquad.Section
	lastFreq   float64
	lastQ      float64
}

func newLowpassNode(ctx *buildContext, _ graph.Node) (processor, error) {
	return &lowpassNode{
		sampleRate: ctx.cfg.proc.SampleRate,
		sections:   [2]*biquad.Section{biquad.NewSection(biquad.Coefficients{}), biquad.NewSection(biquad.Coefficients{})},
		lastFreq:   -1,
	}, nil
}

func (n *lowpassNode) process(a *automation, in, out *bus) error {
	freq := a.values[ParamFilterFrequency][0]
	q := a.values[ParamFilterQ][0]

	if freq != n.lastFreq || q != n.lastQ {
		c := biquad.Lowpass(freq, q, n.sampleRate)
		for _, s := range n.sections {
			s.SetCoefficients(c)
		}

		n.lastFreq, n.lastQ = freq, q
	}

	out.ch = in.ch
	n.sections[0].ProcessBlockTo(out.l, in.l)

	if in.ch == 2 {
		n.sections[1].ProcessBlockTo(out.r, in.r)
	}

	return nil
}

// delayNode delays a mono signal by the automated delay time.
type delayNode struct {
	line       *delay.Line
	sampleRate float64
	delays     []float64
}

func newDelayNode(ctx *buildContext, _ graph.Node) (processor, error) {
	sr := ctx.cfg.proc.SampleRate

	line, err := delay.NewSeconds(MaxDelayTime, sr)
	if err != nil {
		return nil, fmt.Errorf("synth: delay node: %w", err)
	}

	return &delayNode{line: line, sampleRate: sr, delays: make([]float64, ctx.cfg.proc.BlockSize)}, nil
}

func (n *delayNode) process(a *automation, in, out *bus) error {
	for i, t := range a.values[ParamDelayTime] {
		n.delays[i] = t * n.sampleRate
	}

	// The delay line is mono; stereo input is folded down.
	in.mono(out.l)
	out.ch = 1
	n.line.ProcessBlock(out.l, n.delays)

	return nil
}

type sumNode struct{}

func newSumNode(*buildContext, graph.Node) (processor, error) {
	return sumNode{}, nil
}

func (sumNode) process(_ *automation, in, out *bus) error {
	out.copyFrom(in)
	return nil
}

// convolverNode runs the stereo room reverb on the mono input.
type convolverNode struct {
	rev  *reverb.Stereo
	mono []float64
}

func newConvolverNode(ctx *buildContext, _ graph.Node) (processor, error) {
	sr := ctx.cfg.proc.SampleRate

	var rng *rand.Rand
	if ctx.cfg.seeded {
		rng = reverb.NewSeededRand(ctx.cfg.seed)
	}

	ir, err := reverb.RoomImpulse(sr, reverb.DefaultDuration, rng)
	if err != nil {
		return nil, fmt.Errorf("synth: convolver node: %w", err)
	}

	rev, err := reverb.NewStereo(ir, sr, reverb.DefaultPartitionSize, true)
	if err != nil {
		return nil, fmt.Errorf("synth: convolver node: %w", err)
	}

	return &convolverNode{rev: rev, mono: make([]float64, ctx.cfg.proc.BlockSize)}, nil
}

func (n *convolverNode) process(_ *automation, in, out *bus) error {
	in.mono(n.mono)
	out.ch = 2

	return n.rev.Process(out.l, out.r, n.mono)
}

// analyserNode taps the mono downmix and passes the signal through.
type analyserNode struct {
	an   *spectrum.Analyser
	mono []float64
}

func newAnalyserNode(ctx *buildContext, _ graph.Node) (processor, error) {
	an, err := spectrum.NewAnalyser()
	if err != nil {
		return nil, fmt.Errorf("synth: analyser node: %w", err)
	}

	ctx.rt.analyser = an

	return &analyserNode{an: an, mono: make([]float64, ctx.cfg.proc.BlockSize)}, nil
}

func (n *analyserNode) process(_ *automation, in, out *bus) error {
	in.mono(n.mono)
	n.an.Write(n.mono)
	out.copyFrom(in)

	return nil
}

// outputNode is the destination; its output is what the device plays.
type outputNode struct{}

func newOutputNode(ctx *buildContext, n graph.Node) (processor, error) {
	ctx.rt.outputID = n.ID
	return outputNode{}, nil
}

func (outputNode) process(_ *automation, in, out *bus) error {
	out.copyFrom(in)
	if out.ch == 1 {
		copy(out.r, out.l)
		out.ch = 2
	}

	return nil
}
