package demos

import (
	"context"
	"fmt"

	"github.com/stategraph/stategraph/pkg/stategraph"
	"github.com/stategraph/stategraph/pkg/stategraph/llm"
	"github.com/stategraph/stategraph/pkg/stategraph/registry"
)

// humanLoopDemo adds the human_assistance tool. When the model calls
// it the run pauses, the prompter collects an answer on the console,
// and the graph resumes with that answer as the tool result.
var humanLoopDemo = Demo{
	Number:      4,
	Name:        "human_in_the_loop",
	Description: "Model can pause and ask a human via the human_assistance tool.",
	Build:       buildHumanLoopGraph,
	Run:         runHumanLoop,
}

func buildHumanLoopGraph(d Deps) (*stategraph.CompiledGraph[ChatState], error) {
	tools := registry.New[string, ToolFunc]()
	tools.Register(internetSearchTool.Name, newInternetSearch(d.Search))
	tools.Register(humanAssistanceTool.Name, humanAssistance)

	return stategraph.NewGraph[ChatState]().
		AddNode("call_model", newModelNode([]llm.Tool{internetSearchTool, humanAssistanceTool})).
		AddNode("tools", newToolNode(tools)).
		AddEdge(stategraph.START, "call_model").
		AddConditionalEdge("call_model", toolsRouter).
		AddEdge("tools", "call_model").
		Compile()
}

func runHumanLoop(ctx context.Context, d Deps, input string) (ChatState, error) {
	graph, err := buildHumanLoopGraph(d)
	if err != nil {
		return ChatState{}, err
	}
	return runWithInterrupts(ctx, d, graph, input)
}

// runWithInterrupts drives a checkpointed graph, answering every
// interrupt through the prompter until the run finishes. Interrupts
// need a checkpoint store to resume from, so Store and ThreadID are
// mandatory here.
func runWithInterrupts(ctx context.Context, d Deps, graph *stategraph.CompiledGraph[ChatState], input string) (ChatState, error) {
	if d.Store == nil || d.ThreadID == "" {
		return ChatState{}, fmt.Errorf("human-in-the-loop demos need a checkpoint store and thread ID")
	}
	if d.Prompter == nil {
		return ChatState{}, fmt.Errorf("human-in-the-loop demos need a prompter")
	}

	state, err := loadThreadState(d.Store, d.ThreadID)
	if err != nil {
		return ChatState{}, err
	}
	state = state.userTurn(input)

	runCtx := newRunContext(ctx, d)
	opts := runOptions(d, true)

	result, err := graph.Run(runCtx, state, opts...)
	for err != nil {
		intr, ok := stategraph.AsInterrupt(err)
		if !ok {
			return result, err
		}

		answer, perr := d.Prompter.Prompt(intr.Query)
		if perr != nil {
			return result, fmt.Errorf("collect human input: %w", perr)
		}

		result, err = graph.Resume(runCtx, d.Store, d.ThreadID,
			stategraph.ResumeCommand{Value: answer}, opts...)
	}
	return result, nil
}
