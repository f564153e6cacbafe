package stategraph

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph building and compilation.
var (
	// ErrNoEntryPoint indicates no edge from START (or SetEntry call) exists.
	ErrNoEntryPoint = errors.New("entry point not set")

	// ErrEntryNotFound indicates the entry point references a non-existent node.
	ErrEntryNotFound = errors.New("entry point node not found")

	// ErrNodeNotFound indicates an edge references a non-existent node.
	ErrNodeNotFound = errors.New("node not found")

	// ErrNoPathToEnd indicates no path exists from the entry point to END.
	ErrNoPathToEnd = errors.New("no path to END from entry")
)

// Sentinel errors for execution.
var (
	// ErrMaxIterations indicates the execution loop exceeded the configured limit.
	ErrMaxIterations = errors.New("exceeded maximum iterations")

	// ErrNilContext indicates Run was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")

	// ErrInvalidRouterResult indicates a router returned an empty string.
	ErrInvalidRouterResult = errors.New("router returned empty string")

	// ErrRouterTargetNotFound indicates a router returned an unknown node ID.
	ErrRouterTargetNotFound = errors.New("router returned unknown node")
)

// Sentinel errors for checkpointing and resume.
var (
	// ErrThreadIDRequired indicates checkpointing was enabled without a thread ID.
	ErrThreadIDRequired = errors.New("thread ID required for checkpointing")

	// ErrDeserializeState indicates checkpointed state could not be decoded.
	ErrDeserializeState = errors.New("failed to deserialize state")

	// ErrNoCheckpoints indicates no checkpoints exist for the thread.
	ErrNoCheckpoints = errors.New("no checkpoints found for thread")

	// ErrInvalidResumeNode indicates the resume position is not in the graph.
	ErrInvalidResumeNode = errors.New("invalid resume node")

	// ErrCheckpointVersionMismatch indicates an incompatible checkpoint format.
	ErrCheckpointVersionMismatch = errors.New("checkpoint version mismatch")
)

// NodeError wraps a node failure with its position in the graph.
type NodeError struct {
	// NodeID is the node that failed.
	NodeID string
	// Op is the operation that failed (e.g. "execute").
	Op string
	// Err is the underlying error.
	Err error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %s: %s: %v", e.NodeID, e.Op, e.Err)
}

func (e *NodeError) Unwrap() error { return e.Err }

// RouterError wraps a conditional-edge routing failure.
type RouterError struct {
	// FromNode is the node whose router failed.
	FromNode string
	// Returned is the value the router produced.
	Returned string
	// Err is the underlying error.
	Err error
}

func (e *RouterError) Error() string {
	return fmt.Sprintf("router from %s returned %q: %v", e.FromNode, e.Returned, e.Err)
}

func (e *RouterError) Unwrap() error { return e.Err }

// PanicError captures a panic raised inside a node.
type PanicError struct {
	// NodeID is the node that panicked.
	NodeID string
	// Value is the value passed to panic().
	Value any
	// Stack is the stack trace at the point of panic.
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("node %s panicked: %v", e.NodeID, e.Value)
}

// CancellationError records where execution stopped when the context
// was cancelled. State holds the last committed state.
type CancellationError struct {
	// NodeID is the node that was about to execute.
	NodeID string
	// State is the state at cancellation (type-assert to the state type).
	State any
	// Cause is context.Canceled or context.DeadlineExceeded.
	Cause error
}

func (e *CancellationError) Error() string {
	return fmt.Sprintf("cancelled before node %s: %v", e.NodeID, e.Cause)
}

func (e *CancellationError) Unwrap() error { return e.Cause }

// MaxIterationsError is returned when the execution loop exceeds its
// iteration budget, which almost always means a loop without an exit
// router.
type MaxIterationsError struct {
	// Max is the configured limit.
	Max int
	// LastNodeID is the node that would have executed next.
	LastNodeID string
	// State is the state at termination (type-assert to the state type).
	State any
}

func (e *MaxIterationsError) Error() string {
	return fmt.Sprintf("exceeded maximum iterations (%d) at node %s", e.Max, e.LastNodeID)
}

func (e *MaxIterationsError) Unwrap() error { return ErrMaxIterations }

// CheckpointError wraps a checkpoint persistence failure.
type CheckpointError struct {
	// NodeID is the node whose checkpoint failed.
	NodeID string
	// Op is the failing operation ("serialize", "save").
	Op string
	// Err is the underlying error.
	Err error
}

func (e *CheckpointError) Error() string {
	return fmt.Sprintf("checkpoint %s at node %s: %v", e.Op, e.NodeID, e.Err)
}

func (e *CheckpointError) Unwrap() error { return e.Err }

// InterruptError pauses a run for human input. It is not a failure:
// the engine checkpoints the paused position and returns this error so
// the caller can collect an answer and call Resume.
type InterruptError struct {
	// NodeID is the node that interrupted (it replays on resume).
	NodeID string
	// Query is the question posed to the human operator.
	Query string
}

func (e *InterruptError) Error() string {
	return fmt.Sprintf("interrupted at node %s: %s", e.NodeID, e.Query)
}

// AsInterrupt extracts an InterruptError from an error chain, if present.
func AsInterrupt(err error) (*InterruptError, bool) {
	var intr *InterruptError
	if errors.As(err, &intr) {
		return intr, true
	}
	return nil, false
}
