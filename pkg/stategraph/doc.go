/*
Package stategraph provides graph-based orchestration for LLM workflows.

A workflow is a directed graph of named nodes. Each node is a function
from state to state; edges (plain or conditional) decide what runs next.
Graphs are built with a fluent builder, validated by Compile, and
executed sequentially by Run.

	type State struct {
	    Messages []llm.Message
	}

	func callModel(ctx stategraph.Context, s State) (State, error) {
	    resp, err := ctx.LLM().Complete(ctx, llm.CompletionRequest{Messages: s.Messages})
	    if err != nil {
	        return s, err
	    }
	    s.Messages = llm.Append(s.Messages, resp.AsMessage())
	    return s, nil
	}

	graph := stategraph.NewGraph[State]().
	    AddNode("call_model", callModel).
	    AddEdge(stategraph.START, "call_model").
	    AddEdge("call_model", stategraph.END)

	compiled, err := graph.Compile()
	if err != nil {
	    log.Fatal(err)
	}

	ctx := stategraph.NewContext(context.Background(), stategraph.WithLLM(client))
	result, err := compiled.Run(ctx, State{Messages: initial})

# Conditional routing

A conditional edge replaces the static successor with a router that
inspects state at runtime:

	graph.AddConditionalEdge("call_model", func(ctx stategraph.Context, s State) string {
	    if llm.HasToolCalls(s.Messages) {
	        return "tools"
	    }
	    return stategraph.END
	})

# Checkpointing

With a checkpoint store and a thread ID, Run persists state after every
node. Threads are independent histories; re-running with the same thread
ID continues where the previous run left off:

	store, _ := checkpoint.NewSQLiteStore("./threads.db")
	result, err := compiled.Run(ctx, state,
	    stategraph.WithThread(store, "thread-1"))

# Human in the loop

A node (usually a tool) can pause the run by calling Interrupt. The run
returns an *InterruptError; the caller collects input from a human and
re-enters the graph with Resume, which replays the interrupted node with
the answer available:

	result, err := compiled.Run(ctx, state, stategraph.WithThread(store, "t1"))
	var intr *stategraph.InterruptError
	if errors.As(err, &intr) {
	    answer := askHuman(intr.Query)
	    result, err = compiled.Resume(ctx, store, "t1",
	        stategraph.ResumeCommand{Value: answer})
	}

Execution is synchronous and single-threaded per run. Failures are not
retried; the state at the point of failure is returned alongside the
error.
*/
package stategraph
