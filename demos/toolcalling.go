package demos

import (
	"context"

	"github.com/stategraph/stategraph/pkg/stategraph"
	"github.com/stategraph/stategraph/pkg/stategraph/llm"
	"github.com/stategraph/stategraph/pkg/stategraph/registry"
)

// toolsDemo adds a tool-execution node and a conditional edge. The
// model either answers directly (router returns END) or requests the
// internet_search tool; the tool result feeds back into the model.
var toolsDemo = Demo{
	Number:      2,
	Name:        "tools",
	Description: "Tool calling: model may invoke internet_search, result loops back.",
	Build:       buildToolsGraph,
	Run:         runTools,
}

func buildToolsGraph(d Deps) (*stategraph.CompiledGraph[ChatState], error) {
	tools := registry.New[string, ToolFunc]()
	tools.Register(internetSearchTool.Name, newInternetSearch(d.Search))

	return stategraph.NewGraph[ChatState]().
		AddNode("call_model", newModelNode([]llm.Tool{internetSearchTool})).
		AddNode("tools", newToolNode(tools)).
		AddEdge(stategraph.START, "call_model").
		AddConditionalEdge("call_model", toolsRouter).
		AddEdge("tools", "call_model").
		Compile()
}

func runTools(ctx context.Context, d Deps, input string) (ChatState, error) {
	graph, err := buildToolsGraph(d)
	if err != nil {
		return ChatState{}, err
	}

	state := ChatState{Mood: "neutral"}.userTurn(input)
	return graph.Run(newRunContext(ctx, d), state, runOptions(d, false)...)
}
