package stategraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNewGraph verifies basic graph creation.
func TestNewGraph(t *testing.T) {
	graph := NewGraph[Counter]()
	assert.NotNil(t, graph)
	assert.NotNil(t, graph.nodes)
	assert.NotNil(t, graph.edges)
	assert.NotNil(t, graph.conditionalEdges)
	assert.Empty(t, graph.entryPoint)
}

// TestGraph_AddNode tests successful node addition.
func TestGraph_AddNode(t *testing.T) {
	graph := NewGraph[Counter]().
		AddNode("a", increment).
		AddNode("b", increment)

	assert.Len(t, graph.nodes, 2)
	assert.Contains(t, graph.nodes, "a")
	assert.Contains(t, graph.nodes, "b")
}

// TestGraph_AddNode_Chaining tests fluent API chaining.
func TestGraph_AddNode_Chaining(t *testing.T) {
	graph := NewGraph[Counter]()
	result := graph.AddNode("a", increment)
	assert.Same(t, graph, result)
}

// TestGraph_AddNode_EmptyID_Panics tests that empty node ID panics.
func TestGraph_AddNode_EmptyID_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "stategraph: node ID cannot be empty", func() {
		NewGraph[Counter]().AddNode("", increment)
	})
}

// TestGraph_AddNode_ReservedID_Panics tests that reserved IDs panic.
func TestGraph_AddNode_ReservedID_Panics(t *testing.T) {
	endCases := []string{"END", "end", "End", "__end__", "__END__"}
	for _, id := range endCases {
		t.Run(id, func(t *testing.T) {
			assert.PanicsWithValue(t, "stategraph: node ID cannot be reserved word 'END'", func() {
				NewGraph[Counter]().AddNode(id, increment)
			})
		})
	}

	startCases := []string{"START", "start", "Start", "__start__"}
	for _, id := range startCases {
		t.Run(id, func(t *testing.T) {
			assert.PanicsWithValue(t, "stategraph: node ID cannot be reserved word 'START'", func() {
				NewGraph[Counter]().AddNode(id, increment)
			})
		})
	}
}

// TestGraph_AddNode_WhitespaceID_Panics tests that IDs with whitespace panic.
func TestGraph_AddNode_WhitespaceID_Panics(t *testing.T) {
	testCases := []struct {
		name string
		id   string
	}{
		{"space", "node a"},
		{"tab", "node\ta"},
		{"newline", "node\na"},
		{"leading space", " node"},
		{"trailing space", "node "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.PanicsWithValue(t, "stategraph: node ID cannot contain whitespace", func() {
				NewGraph[Counter]().AddNode(tc.id, increment)
			})
		})
	}
}

// TestGraph_AddNode_NilFunc_Panics tests that nil function panics.
func TestGraph_AddNode_NilFunc_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "stategraph: node function cannot be nil", func() {
		NewGraph[Counter]().AddNode("a", nil)
	})
}

// TestGraph_AddNode_DuplicateID_Panics tests that duplicate IDs panic.
func TestGraph_AddNode_DuplicateID_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "stategraph: duplicate node ID: a", func() {
		NewGraph[Counter]().
			AddNode("a", increment).
			AddNode("a", increment)
	})
}

// TestGraph_AddEdge tests edge addition.
func TestGraph_AddEdge(t *testing.T) {
	graph := NewGraph[Counter]().
		AddNode("a", increment).
		AddNode("b", increment).
		AddEdge("a", "b").
		AddEdge("b", END)

	assert.Equal(t, []string{"b"}, graph.edges["a"])
	assert.Equal(t, []string{END}, graph.edges["b"])
}

// TestGraph_AddEdge_FromStart_SetsEntry tests that an edge out of START
// designates the entry node.
func TestGraph_AddEdge_FromStart_SetsEntry(t *testing.T) {
	graph := NewGraph[Counter]().
		AddNode("a", increment).
		AddEdge(START, "a")

	assert.Equal(t, "a", graph.entryPoint)
	assert.Empty(t, graph.edges[START])
}

// TestGraph_AddEdge_IntoStart_Panics tests that edges cannot target START.
func TestGraph_AddEdge_IntoStart_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "stategraph: edge cannot target START", func() {
		NewGraph[Counter]().AddEdge("a", START)
	})
}

// TestGraph_AddEdge_FromEnd_Panics tests that edges cannot leave END.
func TestGraph_AddEdge_FromEnd_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "stategraph: edge cannot originate from END", func() {
		NewGraph[Counter]().AddEdge(END, "a")
	})
}

// TestGraph_AddEdge_EmptyEndpoint_Panics tests that empty endpoints panic.
func TestGraph_AddEdge_EmptyEndpoint_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "stategraph: edge endpoints cannot be empty", func() {
		NewGraph[Counter]().AddEdge("", "b")
	})
	assert.PanicsWithValue(t, "stategraph: edge endpoints cannot be empty", func() {
		NewGraph[Counter]().AddEdge("a", "")
	})
}

// TestGraph_AddEdge_MultipleFromSameNode tests multiple edges from one node.
func TestGraph_AddEdge_MultipleFromSameNode(t *testing.T) {
	graph := NewGraph[Counter]().
		AddEdge("a", "b").
		AddEdge("a", "c")

	assert.Equal(t, []string{"b", "c"}, graph.edges["a"])
}

// TestGraph_AddConditionalEdge tests conditional edge addition.
func TestGraph_AddConditionalEdge(t *testing.T) {
	router := func(ctx Context, s Counter) string {
		if s.Value > 0 {
			return END
		}
		return "loop"
	}

	graph := NewGraph[Counter]().
		AddNode("check", increment).
		AddConditionalEdge("check", router)

	assert.NotNil(t, graph.conditionalEdges["check"])
}

// TestGraph_AddConditionalEdge_NilRouter_Panics tests that nil router panics.
func TestGraph_AddConditionalEdge_NilRouter_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "stategraph: router function cannot be nil", func() {
		NewGraph[Counter]().AddConditionalEdge("check", nil)
	})
}

// TestGraph_AddConditionalEdge_Duplicate_Panics tests that attaching two
// routers to one node panics.
func TestGraph_AddConditionalEdge_Duplicate_Panics(t *testing.T) {
	router := func(ctx Context, s Counter) string { return END }

	assert.PanicsWithValue(t, "stategraph: duplicate conditional edge from: check", func() {
		NewGraph[Counter]().
			AddNode("check", increment).
			AddConditionalEdge("check", router).
			AddConditionalEdge("check", router)
	})
}

// TestGraph_AddConditionalEdge_ReservedSource_Panics tests that routers
// cannot hang off START or END.
func TestGraph_AddConditionalEdge_ReservedSource_Panics(t *testing.T) {
	router := func(ctx Context, s Counter) string { return END }

	for _, from := range []string{START, END} {
		assert.PanicsWithValue(t, "stategraph: conditional edge source cannot be a reserved node", func() {
			NewGraph[Counter]().AddConditionalEdge(from, router)
		})
	}
}

// TestGraph_SetEntry tests entry point setting.
func TestGraph_SetEntry(t *testing.T) {
	graph := NewGraph[Counter]().
		AddNode("first", increment).
		SetEntry("first")

	assert.Equal(t, "first", graph.entryPoint)
}

// TestGraph_SetEntry_CanBeOverwritten tests that entry can be changed.
func TestGraph_SetEntry_CanBeOverwritten(t *testing.T) {
	graph := NewGraph[Counter]().
		SetEntry("first").
		SetEntry("second")

	assert.Equal(t, "second", graph.entryPoint)
}

// TestGraph_FluentAPI tests full fluent API usage.
func TestGraph_FluentAPI(t *testing.T) {
	graph := NewGraph[Counter]().
		AddNode("a", increment).
		AddNode("b", increment).
		AddNode("c", increment).
		AddEdge(START, "a").
		AddEdge("a", "b").
		AddEdge("b", "c").
		AddEdge("c", END)

	assert.Len(t, graph.nodes, 3)
	assert.Equal(t, "a", graph.entryPoint)
	assert.Len(t, graph.edges, 3)
}
