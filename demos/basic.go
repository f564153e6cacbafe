package demos

import (
	"context"

	"github.com/stategraph/stategraph/pkg/stategraph"
)

// basicDemo is the smallest possible graph: one model node between
// START and END. One user prompt in, one assistant turn out.
var basicDemo = Demo{
	Number:      1,
	Name:        "basic",
	Description: "Single model node: prompt in, one assistant turn out.",
	Build:       buildBasicGraph,
	Run:         runBasic,
}

func buildBasicGraph(Deps) (*stategraph.CompiledGraph[ChatState], error) {
	return stategraph.NewGraph[ChatState]().
		AddNode("call_model", newModelNode(nil)).
		AddEdge(stategraph.START, "call_model").
		AddEdge("call_model", stategraph.END).
		Compile()
}

func runBasic(ctx context.Context, d Deps, input string) (ChatState, error) {
	graph, err := buildBasicGraph(d)
	if err != nil {
		return ChatState{}, err
	}

	state := ChatState{Mood: "neutral"}.userTurn(input)
	return graph.Run(newRunContext(ctx, d), state, runOptions(d, false)...)
}
