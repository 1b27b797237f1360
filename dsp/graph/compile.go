package graph

import "fmt"

// Compiled is a validated topology with a processing order.
type Compiled struct {
	Nodes    map[string]Node
	Order    []string
	Incoming map[string][]Edge // forward edges only
	Outgoing map[string][]Edge // forward edges only

	// Feedback is the loop-closing edge, if any.
	Feedback    Edge
	HasFeedback bool
}

// Sources returns the forward sources feeding id, in declaration order.
func (c *Compiled) Sources(id string) []string {
	in := c.Incoming[id]
	out := make([]string, len(in))

	for i, e := range in {
		out[i] = e.From
	}

	return out
}

// Compile validates g and returns its processing order (Kahn's algorithm).
func (g *Graph) Compile() (*Compiled, error) {
	nodes := make(map[string]Node, len(g.nodes))
	for _, n := range g.nodes {
		if _, dup := nodes[n.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
		}

		nodes[n.ID] = n
	}

	c := &Compiled{
		Nodes:    nodes,
		Incoming: make(map[string][]Edge, len(nodes)),
		Outgoing: make(map[string][]Edge, len(nodes)),
	}

	indegree := make(map[string]int, len(nodes))
	for id := range nodes {
		indegree[id] = 0
	}

	for _, e := range g.edges {
		for _, id := range []string{e.From, e.To} {
			if _, ok := nodes[id]; !ok {
				return nil, fmt.Errorf("%w: %q in %s -> %s", ErrUnknownNode, id, e.From, e.To)
			}
		}

		if e.Feedback {
			if c.HasFeedback {
				return nil, fmt.Errorf("%w: second feedback edge %s -> %s", ErrFeedbackEdge, e.From, e.To)
			}

			c.Feedback = e
			c.HasFeedback = true

			continue
		}

		if e.From == e.To {
			return nil, fmt.Errorf("%w: self loop on %q", ErrCycle, e.From)
		}

		c.Outgoing[e.From] = append(c.Outgoing[e.From], e)
		c.Incoming[e.To] = append(c.Incoming[e.To], e)
		indegree[e.To]++
	}

	// Seed in declaration order so the result is deterministic.
	queue := make([]string, 0, len(nodes))
	for _, n := range g.nodes {
		if indegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	order := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		order = append(order, id)
		for _, e := range c.Outgoing[id] {
			indegree[e.To]--
			if indegree[e.To] == 0 {
				queue = append(queue, e.To)
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, fmt.Errorf("%w: %d nodes not orderable without a feedback edge", ErrCycle, len(nodes)-len(order))
	}

	c.Order = order

	for id, n := range nodes {
		n.Inputs = len(c.Incoming[id])
		nodes[id] = n
	}

	if c.HasFeedback {
		if paths := c.countPaths(c.Feedback.To, c.Feedback.From); paths != 1 {
			return nil, fmt.Errorf("%w: %s -> %s closes %d cycles, want 1",
				ErrFeedbackEdge, c.Feedback.From, c.Feedback.To, paths)
		}
	}

	return c, nil
}

// countPaths counts forward paths from src to dst over the topological
// order. The count saturates at 2.
func (c *Compiled) countPaths(src, dst string) int {
	if src == dst {
		return 1
	}

	paths := map[string]int{src: 1}

	for _, id := range c.Order {
		n := paths[id]
		if n == 0 {
			continue
		}

		for _, e := range c.Outgoing[id] {
			paths[e.To] = min(paths[e.To]+n, 2)
		}
	}

	return paths[dst]
}
