package stategraph

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stategraph/stategraph/pkg/stategraph/checkpoint"
)

// ResumeCommand carries the value that re-enters a paused graph,
// mirroring the resume side of Interrupt. For the human-in-the-loop
// demos the value is the operator's console answer.
type ResumeCommand struct {
	// Value is handed to the replayed node via Context.ResumeValue.
	Value any
}

// Resume continues execution from the latest checkpoint of a thread.
//
// After an interrupt the latest checkpoint points at the node that
// paused; that node replays with cmd.Value available through
// Interrupt. After a crash the latest checkpoint points at the next
// unexecuted node, and cmd may be the zero value.
func (cg *CompiledGraph[S]) Resume(ctx Context, store checkpoint.Store, threadID string, cmd ResumeCommand, opts ...RunOption) (S, error) {
	var zero S

	if ctx == nil {
		return zero, ErrNilContext
	}

	cp, err := store.Latest(threadID)
	if err != nil {
		if errors.Is(err, checkpoint.ErrNotFound) {
			return zero, fmt.Errorf("%w: %s", ErrNoCheckpoints, threadID)
		}
		return zero, fmt.Errorf("load checkpoint: %w", err)
	}

	if cp.Version != checkpoint.Version {
		return zero, fmt.Errorf("%w: got %d, expected %d",
			ErrCheckpointVersionMismatch, cp.Version, checkpoint.Version)
	}

	var state S
	if err := json.Unmarshal(cp.State, &state); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrDeserializeState, err)
	}

	startNode := cp.NextNode
	if startNode != END && !cg.HasNode(startNode) {
		return zero, fmt.Errorf("%w: %s", ErrInvalidResumeNode, startNode)
	}

	cfg := defaultRunConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.store = store
	cfg.threadID = threadID
	if cmd.Value != nil {
		cfg.resumeValue = cmd.Value
		cfg.hasResume = true
	}

	if startNode == END {
		return state, nil
	}

	return cg.run(ctx, state, startNode, &cfg)
}
