package demos

import (
	"context"
)

// memoryDemo is the tools graph plus a checkpoint store. State is
// restored from the thread's latest checkpoint before each run, so
// consecutive runs with one thread ID hold a single growing
// conversation while distinct thread IDs stay independent.
var memoryDemo = Demo{
	Number:      3,
	Name:        "memory",
	Description: "Tools graph with checkpointing: one thread, one growing history.",
	Build:       buildToolsGraph,
	Run:         runMemory,
}

func runMemory(ctx context.Context, d Deps, input string) (ChatState, error) {
	graph, err := buildToolsGraph(d)
	if err != nil {
		return ChatState{}, err
	}

	state, err := loadThreadState(d.Store, d.ThreadID)
	if err != nil {
		return ChatState{}, err
	}
	state = state.userTurn(input)

	return graph.Run(newRunContext(ctx, d), state, runOptions(d, true)...)
}
