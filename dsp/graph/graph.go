package graph

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrCycle         = errors.New("graph: contains cycle")
	ErrUnknownNode   = errors.New("graph: unknown node")
	ErrDuplicateNode = errors.New("graph: duplicate node")
	ErrFeedbackEdge  = errors.New("graph: invalid feedback edge")
)

// Node is a typed vertex with optional parameters.
type Node struct {
	ID     string
	Type   string
	Num    map[string]float64
	Str    map[string]string
	Inputs int // forward in-degree, filled by Compile
}

// Edge is a directed connection.
type Edge struct {
	From     string
	To       string
	Feedback bool
}

// Graph is an uncompiled topology.
type Graph struct {
	nodes []Node
	edges []Edge
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

// AddNode appends a node. Duplicates are reported by Compile.
func (g *Graph) AddNode(id, typ string, num map[string]float64) *Graph {
	if num == nil {
		num = map[string]float64{}
	}

	g.nodes = append(g.nodes, Node{ID: id, Type: typ, Num: num, Str: map[string]string{}})

	return g
}

// Connect adds a forward connection.
func (g *Graph) Connect(from, to string) *Graph {
	g.edges = append(g.edges, Edge{From: from, To: to})
	return g
}

// ConnectFeedback adds a connection that closes a loop.
func (g *Graph) ConnectFeedback(from, to string) *Graph {
	g.edges = append(g.edges, Edge{From: from, To: to, Feedback: true})
	return g
}

type jsonNode struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Params any    `json:"params"`
}

type jsonConnection struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Feedback bool   `json:"feedback,omitempty"`
}

type jsonGraph struct {
	Nodes       []jsonNode       `json:"nodes"`
	Connections []jsonConnection `json:"connections"`
}

// Parse reads a JSON topology. Nodes without an id or type are rejected.
func Parse(raw []byte) (*Graph, error) {
	var state jsonGraph

	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("graph: invalid json: %w", err)
	}

	g := New()

	for i, n := range state.Nodes {
		if n.ID == "" || n.Type == "" {
			return nil, fmt.Errorf("graph: node %d: missing id or type", i)
		}

		num, str := parseNodeParams(n.Params)
		g.nodes = append(g.nodes, Node{ID: n.ID, Type: n.Type, Num: num, Str: str})
	}

	for _, c := range state.Connections {
		g.edges = append(g.edges, Edge(c))
	}

	return g, nil
}

// MarshalJSON encodes the graph in the form accepted by Parse.
func (g *Graph) MarshalJSON() ([]byte, error) {
	state := jsonGraph{
		Nodes:       make([]jsonNode, 0, len(g.nodes)),
		Connections: make([]jsonConnection, 0, len(g.edges)),
	}

	for _, n := range g.nodes {
		params := map[string]any{}
		for k, v := range n.Num {
			params[k] = v
		}

		for k, v := range n.Str {
			params[k] = v
		}

		jn := jsonNode{ID: n.ID, Type: n.Type}
		if len(params) > 0 {
			jn.Params = params
		}

		state.Nodes = append(state.Nodes, jn)
	}

	for _, e := range g.edges {
		state.Connections = append(state.Connections, jsonConnection(e))
	}

	return json.Marshal(state)
}

// parseNodeParams extracts numeric and string parameters from a raw JSON
// params value. Booleans become 0 or 1.
func parseNodeParams(raw any) (map[string]float64, map[string]string) {
	num := map[string]float64{}
	str := map[string]string{}

	params, ok := raw.(map[string]any)
	if !ok || params == nil {
		return num, str
	}

	for k, v := range params {
		switch t := v.(type) {
		case float64:
			num[k] = t
		case string:
			str[k] = t
		case bool:
			if t {
				num[k] = 1
			} else {
				num[k] = 0
			}
		}
	}

	return num, str
}
