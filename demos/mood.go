package demos

import (
	"context"

	"github.com/stategraph/stategraph/pkg/stategraph"
	"github.com/stategraph/stategraph/pkg/stategraph/llm"
	"github.com/stategraph/stategraph/pkg/stategraph/registry"
)

// moodDemo extends the human-in-the-loop graph with a scalar state
// field: the agent's mood. The change_mood tool writes the field, and
// the model node reads it back into the system prompt on the next
// turn.
var moodDemo = Demo{
	Number:      5,
	Name:        "state",
	Description: "Custom state field: the change_mood tool updates the agent's mood.",
	Build:       buildMoodGraph,
	Run:         runMood,
}

func buildMoodGraph(d Deps) (*stategraph.CompiledGraph[ChatState], error) {
	tools := registry.New[string, ToolFunc]()
	tools.Register(internetSearchTool.Name, newInternetSearch(d.Search))
	tools.Register(humanAssistanceTool.Name, humanAssistance)
	tools.Register(changeMoodTool.Name, changeMood)

	return stategraph.NewGraph[ChatState]().
		AddNode("call_model", newModelNode([]llm.Tool{internetSearchTool, humanAssistanceTool, changeMoodTool})).
		AddNode("tools", newToolNode(tools)).
		AddEdge(stategraph.START, "call_model").
		AddConditionalEdge("call_model", toolsRouter).
		AddEdge("tools", "call_model").
		Compile()
}

func runMood(ctx context.Context, d Deps, input string) (ChatState, error) {
	graph, err := buildMoodGraph(d)
	if err != nil {
		return ChatState{}, err
	}
	return runWithInterrupts(ctx, d, graph, input)
}
