// Package graph describes and validates audio processing topologies.
//
// A topology is a set of typed nodes joined by directed connections. It
// may be built programmatically or parsed from JSON:
//
//	{
//	  "nodes": [{"id": "delay", "type": "delay"}, {"id": "fb", "type": "gain", "params": {"gain": 0.4}}],
//	  "connections": [{"from": "delay", "to": "fb"}, {"from": "fb", "to": "delay", "feedback": true}]
//	}
//
// Compile orders the nodes topologically over forward connections. At most
// one connection may be marked as feedback, and it must close exactly one
// cycle. At render time a feedback connection carries the previous block
// of its source, which is what makes the loop computable.
package graph
