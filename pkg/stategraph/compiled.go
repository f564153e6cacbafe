package stategraph

import (
	"fmt"
	"sort"
	"strings"
)

// CompiledGraph is an immutable, executable graph produced by Compile.
// It is safe for concurrent Run calls; the structure cannot change
// after compilation.
type CompiledGraph[S any] struct {
	nodes            map[string]NodeFunc[S]
	edges            map[string][]string
	conditionalEdges map[string]RouterFunc[S]
	entryPoint       string

	// Precomputed adjacency for introspection.
	successors    map[string][]string
	predecessors  map[string][]string
	isConditional map[string]bool
}

// EntryPoint returns the entry node ID.
func (cg *CompiledGraph[S]) EntryPoint() string {
	return cg.entryPoint
}

// NodeIDs returns all node identifiers, sorted.
func (cg *CompiledGraph[S]) NodeIDs() []string {
	ids := make([]string, 0, len(cg.nodes))
	for id := range cg.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasNode reports whether id exists in the graph.
func (cg *CompiledGraph[S]) HasNode(id string) bool {
	_, exists := cg.nodes[id]
	return exists
}

// Successors returns the static edge targets of id. Conditional
// targets are runtime-determined and not included.
func (cg *CompiledGraph[S]) Successors(id string) []string {
	if id == END {
		return nil
	}
	return cg.successors[id]
}

// Predecessors returns the nodes with static edges into id.
func (cg *CompiledGraph[S]) Predecessors(id string) []string {
	return cg.predecessors[id]
}

// IsConditional reports whether id carries a conditional edge.
func (cg *CompiledGraph[S]) IsConditional(id string) bool {
	return cg.isConditional[id]
}

// Mermaid renders the topology as Mermaid flowchart source, suitable
// for pasting into any Mermaid renderer. Conditional edges appear as
// dotted arrows to every node plus END, since routers are opaque.
func (cg *CompiledGraph[S]) Mermaid() string {
	var b strings.Builder
	b.WriteString("flowchart TD\n")
	b.WriteString(fmt.Sprintf("    __start__([start]) --> %s\n", cg.entryPoint))

	for _, from := range cg.NodeIDs() {
		for _, to := range cg.edges[from] {
			if to == END {
				b.WriteString(fmt.Sprintf("    %s --> __end__([end])\n", from))
			} else {
				b.WriteString(fmt.Sprintf("    %s --> %s\n", from, to))
			}
		}
		if cg.isConditional[from] {
			for _, to := range cg.NodeIDs() {
				if to != from {
					b.WriteString(fmt.Sprintf("    %s -.-> %s\n", from, to))
				}
			}
			b.WriteString(fmt.Sprintf("    %s -.-> __end__([end])\n", from))
		}
	}

	return b.String()
}

// getNode returns the node function for id.
func (cg *CompiledGraph[S]) getNode(id string) (NodeFunc[S], bool) {
	fn, exists := cg.nodes[id]
	return fn, exists
}

// getRouter returns the router attached to id, if any.
func (cg *CompiledGraph[S]) getRouter(id string) (RouterFunc[S], bool) {
	router, exists := cg.conditionalEdges[id]
	return router, exists
}

// getEdges returns the static edge targets of id.
func (cg *CompiledGraph[S]) getEdges(id string) []string {
	return cg.edges[id]
}
