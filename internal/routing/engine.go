// Package routing finds bus rides between two stops of a network.Graph:
// direct rides, one-transfer rides and a minimum-hop breadth-first fallback,
// merged and ranked by Search.
package routing

import (
	"github.com/NISHANTH0777/transport-backend/internal/network"
)

// Engine runs route searches against one immutable graph. It keeps no
// per-query state and is safe for concurrent use.
type Engine struct {
	graph *network.Graph
}

// NewEngine creates an Engine over g.
func NewEngine(g *network.Graph) *Engine {
	return &Engine{graph: g}
}

// Graph returns the graph the engine searches.
func (e *Engine) Graph() *network.Graph {
	return e.graph
}

// segment returns stops[from..to] inclusive, reversed when from > to. The
// result never aliases the graph's slices.
func segment(stops []string, from, to int) []string {
	if from <= to {
		return append([]string(nil), stops[from:to+1]...)
	}
	out := make([]string, 0, from-to+1)
	for i := from; i >= to; i-- {
		out = append(out, stops[i])
	}
	return out
}
