package stategraph

import (
	"fmt"
	"strings"
	"sync"
)

// Graph is a mutable builder for workflow graphs. Build it in one
// goroutine, then Compile into an immutable CompiledGraph that may be
// shared.
//
//	graph := stategraph.NewGraph[State]().
//	    AddNode("call_model", callModel).
//	    AddNode("tools", toolNode).
//	    AddEdge(stategraph.START, "call_model").
//	    AddConditionalEdge("call_model", router).
//	    AddEdge("tools", "call_model")
type Graph[S any] struct {
	mu               sync.RWMutex
	nodes            map[string]NodeFunc[S]
	edges            map[string][]string
	conditionalEdges map[string]RouterFunc[S]
	entryPoint       string
}

// NewGraph creates an empty graph builder for state type S.
func NewGraph[S any]() *Graph[S] {
	return &Graph[S]{
		nodes:            make(map[string]NodeFunc[S]),
		edges:            make(map[string][]string),
		conditionalEdges: make(map[string]RouterFunc[S]),
	}
}

// AddNode adds a named node. Returns the graph for chaining.
//
// Panics if id is empty, reserved (START/END), contains whitespace,
// already exists, or fn is nil. Structural mistakes are programmer
// errors, so they fail loudly at build time rather than surfacing as
// compile errors later.
func (g *Graph[S]) AddNode(id string, fn NodeFunc[S]) *Graph[S] {
	if id == "" {
		panic("stategraph: node ID cannot be empty")
	}

	switch strings.ToLower(id) {
	case "start", "__start__":
		panic("stategraph: node ID cannot be reserved word 'START'")
	case "end", "__end__":
		panic("stategraph: node ID cannot be reserved word 'END'")
	}

	if strings.ContainsAny(id, " \t\n\r") {
		panic("stategraph: node ID cannot contain whitespace")
	}

	if fn == nil {
		panic("stategraph: node function cannot be nil")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodes[id]; exists {
		panic(fmt.Sprintf("stategraph: duplicate node ID: %s", id))
	}

	g.nodes[id] = fn
	return g
}

// AddEdge adds a directed edge. An edge from START sets the entry
// node; an edge to END marks a terminal node. Returns the graph for
// chaining.
//
// Panics if from or to is empty, or if the edge points backwards into
// START or out of END.
func (g *Graph[S]) AddEdge(from, to string) *Graph[S] {
	if from == "" || to == "" {
		panic("stategraph: edge endpoints cannot be empty")
	}
	if to == START {
		panic("stategraph: edge cannot target START")
	}
	if from == END {
		panic("stategraph: edge cannot originate from END")
	}

	if from == START {
		return g.SetEntry(to)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.edges[from] = append(g.edges[from], to)
	return g
}

// AddConditionalEdge attaches a router to from. At runtime the router
// picks the next node instead of a static edge. Returns the graph for
// chaining.
//
// Panics if from is empty or reserved, or router is nil. A node can
// carry both plain edges and a conditional edge; the conditional edge
// wins at runtime.
func (g *Graph[S]) AddConditionalEdge(from string, router RouterFunc[S]) *Graph[S] {
	if from == "" {
		panic("stategraph: conditional edge source cannot be empty")
	}
	if from == START || from == END {
		panic("stategraph: conditional edge source cannot be a reserved node")
	}
	if router == nil {
		panic("stategraph: router function cannot be nil")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.conditionalEdges[from]; exists {
		panic(fmt.Sprintf("stategraph: duplicate conditional edge from: %s", from))
	}

	g.conditionalEdges[from] = router
	return g
}

// SetEntry designates the entry node. Equivalent to AddEdge(START, id).
func (g *Graph[S]) SetEntry(id string) *Graph[S] {
	if id == "" {
		panic("stategraph: entry point cannot be empty")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.entryPoint = id
	return g
}
