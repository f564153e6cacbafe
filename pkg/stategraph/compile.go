package stategraph

import (
	"errors"
	"fmt"
	"log/slog"
)

// Compile validates the graph and produces an executable CompiledGraph.
// Multiple validation failures are joined into one error.
//
// Checks, in order:
//  1. an entry point is set
//  2. the entry point references an existing node
//  3. edge sources reference existing nodes
//  4. edge targets reference existing nodes or END
//  5. the entry point can reach END
//
// Nodes unreachable from the entry are logged as warnings but do not
// fail compilation.
func (g *Graph[S]) Compile() (*CompiledGraph[S], error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var errs []error

	if g.entryPoint == "" {
		errs = append(errs, ErrNoEntryPoint)
	} else if _, exists := g.nodes[g.entryPoint]; !exists {
		errs = append(errs, fmt.Errorf("%w: %s", ErrEntryNotFound, g.entryPoint))
	}

	for from, targets := range g.edges {
		if _, exists := g.nodes[from]; !exists {
			errs = append(errs, fmt.Errorf("%w: edge source %q does not exist", ErrNodeNotFound, from))
		}
		for _, to := range targets {
			if to == END {
				continue
			}
			if _, exists := g.nodes[to]; !exists {
				errs = append(errs, fmt.Errorf("%w: edge target %q does not exist", ErrNodeNotFound, to))
			}
		}
	}

	for from := range g.conditionalEdges {
		if _, exists := g.nodes[from]; !exists {
			errs = append(errs, fmt.Errorf("%w: conditional edge source %q does not exist", ErrNodeNotFound, from))
		}
	}

	if g.entryPoint != "" {
		if _, exists := g.nodes[g.entryPoint]; exists && !g.hasPathToEnd() {
			errs = append(errs, ErrNoPathToEnd)
		}
	}

	g.warnUnreachableNodes()

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return g.buildCompiledGraph(), nil
}

// hasPathToEnd checks reachability of END from the entry point.
// Nodes with a conditional edge are assumed to potentially return END,
// since routers are opaque functions.
func (g *Graph[S]) hasPathToEnd() bool {
	canReachEnd := map[string]bool{END: true}

	changed := true
	for changed {
		changed = false

		for from, targets := range g.edges {
			if canReachEnd[from] {
				continue
			}
			for _, to := range targets {
				if canReachEnd[to] {
					canReachEnd[from] = true
					changed = true
					break
				}
			}
		}

		for from := range g.conditionalEdges {
			if !canReachEnd[from] {
				canReachEnd[from] = true
				changed = true
			}
		}
	}

	return canReachEnd[g.entryPoint]
}

// warnUnreachableNodes logs nodes not reachable from the entry point.
func (g *Graph[S]) warnUnreachableNodes() {
	if g.entryPoint == "" {
		return
	}

	reachable := g.findReachableNodes()
	for nodeID := range g.nodes {
		if !reachable[nodeID] {
			slog.Warn("node is unreachable from entry", "node_id", nodeID)
		}
	}
}

// findReachableNodes walks forward from the entry point. Conditional
// edges are treated as possibly reaching every node, since routers can
// return any ID.
func (g *Graph[S]) findReachableNodes() map[string]bool {
	reachable := make(map[string]bool)

	var visit func(id string)
	visit = func(id string) {
		if id == END || reachable[id] {
			return
		}
		reachable[id] = true

		for _, to := range g.edges[id] {
			visit(to)
		}
		if _, hasRouter := g.conditionalEdges[id]; hasRouter {
			for other := range g.nodes {
				visit(other)
			}
		}
	}

	visit(g.entryPoint)
	return reachable
}

// buildCompiledGraph snapshots the builder into an immutable graph with
// precomputed adjacency.
func (g *Graph[S]) buildCompiledGraph() *CompiledGraph[S] {
	cg := &CompiledGraph[S]{
		nodes:            make(map[string]NodeFunc[S], len(g.nodes)),
		edges:            make(map[string][]string, len(g.edges)),
		conditionalEdges: make(map[string]RouterFunc[S], len(g.conditionalEdges)),
		entryPoint:       g.entryPoint,
		successors:       make(map[string][]string),
		predecessors:     make(map[string][]string),
		isConditional:    make(map[string]bool),
	}

	for id, fn := range g.nodes {
		cg.nodes[id] = fn
	}
	for from, targets := range g.edges {
		cg.edges[from] = append([]string(nil), targets...)
		for _, to := range targets {
			cg.successors[from] = append(cg.successors[from], to)
			if to != END {
				cg.predecessors[to] = append(cg.predecessors[to], from)
			}
		}
	}
	for from, router := range g.conditionalEdges {
		cg.conditionalEdges[from] = router
		cg.isConditional[from] = true
	}

	return cg
}
