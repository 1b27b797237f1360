package synth

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/cwbudde/algo-soundscape/dsp/graph"
	"github.com/cwbudde/algo-soundscape/dsp/osc"
	"github.com/cwbudde/algo-soundscape/dsp/param"
	"github.com/cwbudde/algo-soundscape/dsp/spectrum"
)

//go:embed topology.json
var topologyJSON []byte

// Topology returns the compiled voice graph.
func Topology() (*graph.Compiled, error) {
	g, err := graph.Parse(topologyJSON)
	if err != nil {
		return nil, err
	}

	return g.Compile()
}

// automation holds one quantum of per-sample parameter values.
type automation struct {
	values map[string][]float64
}

// runtime is an instantiated voice graph.
type runtime struct {
	order    []string
	procs    []processor
	sources  [][]int // forward sources per order index
	outs     []*bus
	in       *bus
	fbFrom   int // order index of the feedback source, or -1
	fbTo     int
	outIdx   int
	outputID string

	osc      *oscNode
	analyser *spectrum.Analyser
	auto     automation
}

func newRuntime(cfg config, waveform osc.Waveform, params []*param.Param) (*runtime, error) {
	c, err := Topology()
	if err != nil {
		return nil, fmt.Errorf("synth: topology: %w", err)
	}

	frames := cfg.proc.BlockSize
	rt := &runtime{
		order:   c.Order,
		procs:   make([]processor, len(c.Order)),
		sources: make([][]int, len(c.Order)),
		outs:    make([]*bus, len(c.Order)),
		in:      newBus(frames),
		fbFrom:  -1,
		fbTo:    -1,
		auto:    automation{values: make(map[string][]float64, len(params))},
	}

	for _, p := range params {
		rt.auto.values[p.Name()] = make([]float64, frames)
	}

	index := make(map[string]int, len(c.Order))
	for i, id := range c.Order {
		index[id] = i
	}

	ctx := &buildContext{cfg: cfg, waveform: waveform, rt: rt}

	for i, id := range c.Order {
		n := c.Nodes[id]

		build, ok := factories[n.Type]
		if !ok {
			return nil, fmt.Errorf("%w: %q", errUnknownNodeType, n.Type)
		}

		proc, err := build(ctx, n)
		if err != nil {
			return nil, err
		}

		rt.procs[i] = proc
		rt.outs[i] = newBus(frames)

		for _, src := range c.Sources(id) {
			rt.sources[i] = append(rt.sources[i], index[src])
		}
	}

	if c.HasFeedback {
		rt.fbFrom = index[c.Feedback.From]
		rt.fbTo = index[c.Feedback.To]
	}

	if rt.osc == nil || rt.analyser == nil || rt.outputID == "" {
		return nil, errors.New("synth: topology lacks a required node")
	}

	rt.outIdx = index[rt.outputID]

	return rt, nil
}

// render runs one quantum through every node and returns the output bus.
// Parameters are advanced by one quantum.
func (rt *runtime) render(params []*param.Param) (*bus, error) {
	for _, p := range params {
		p.Fill(rt.auto.values[p.Name()])
	}

	for i, proc := range rt.procs {
		ch := 1
		for _, src := range rt.sources[i] {
			ch = max(ch, rt.outs[src].ch)
		}

		// The feedback source runs later in the order, so its bus still
		// holds the previous quantum here.
		if i == rt.fbTo {
			ch = max(ch, rt.outs[rt.fbFrom].ch)
		}

		rt.in.reset(ch)

		for _, src := range rt.sources[i] {
			rt.in.add(rt.outs[src])
		}

		if i == rt.fbTo {
			rt.in.add(rt.outs[rt.fbFrom])
		}

		if err := proc.process(&rt.auto, rt.in, rt.outs[i]); err != nil {
			return nil, fmt.Errorf("synth: node %q: %w", rt.order[i], err)
		}
	}

	return rt.outs[rt.outIdx], nil
}
