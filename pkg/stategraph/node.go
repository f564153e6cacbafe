package stategraph

// START is the virtual entry marker. An edge from START designates the
// entry node; START itself is never executed.
const START = "__start__"

// END is the terminal marker. An edge to END (or a router returning
// END) finishes the run.
const END = "__end__"

// NodeFunc is the signature of all node functions. Nodes receive the
// execution context and the current state and return the next state.
//
// State is passed by value: modify the copy and return it rather than
// relying on pointer mutation.
type NodeFunc[S any] func(ctx Context, state S) (S, error)

// RouterFunc decides the next node for a conditional edge. It must
// return an existing node ID or END; anything else is a runtime
// RouterError.
type RouterFunc[S any] func(ctx Context, state S) string
