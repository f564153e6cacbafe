package stategraph

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/stategraph/stategraph/pkg/stategraph/checkpoint"
	"github.com/stategraph/stategraph/pkg/stategraph/observability"
	"go.opentelemetry.io/otel/trace"
)

// Run executes the graph to completion with the given initial state.
//
// On success, the state after the final node is returned. On error,
// the state at the point of failure is returned alongside the error.
// An *InterruptError is a pause, not a failure: the paused position is
// checkpointed (when a thread is configured) and the caller is
// expected to Resume.
//
// Execution is a simple loop: start at the entry node, execute it,
// pick the next node via a plain or conditional edge, repeat until
// END. Cancellation is checked before each node.
func (cg *CompiledGraph[S]) Run(ctx Context, state S, opts ...RunOption) (result S, runErr error) {
	if ctx == nil {
		return state, ErrNilContext
	}

	cfg := defaultRunConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.store != nil && cfg.threadID == "" {
		return state, ErrThreadIDRequired
	}

	return cg.run(ctx, state, cg.entryPoint, &cfg)
}

// run executes from startNode with full run-level observability.
func (cg *CompiledGraph[S]) run(fgCtx Context, state S, startNode string, cfg *runConfig) (result S, runErr error) {
	runID := fgCtx.RunID()
	startTime := time.Now()

	observability.LogRunStart(cfg.logger, runID)

	var tracingCtx context.Context = fgCtx
	var runSpan trace.Span
	if cfg.tracingEnabled {
		tracingCtx, runSpan = cfg.spans.StartRunSpan(fgCtx, "stategraph", runID)
		defer func() {
			cfg.spans.EndSpanWithError(runSpan, runErr)
		}()
	}

	var nodeCount int
	result, nodeCount, runErr = cg.runLoop(tracingCtx, fgCtx, state, startNode, cfg)

	duration := time.Since(startTime)
	durationMs := float64(duration.Milliseconds())

	cfg.metrics.RecordGraphRun(fgCtx, runErr == nil, duration)

	switch err := runErr.(type) {
	case nil:
		observability.LogRunComplete(cfg.logger, runID, durationMs, nodeCount)
	case *InterruptError:
		observability.LogRunInterrupted(cfg.logger, runID, err.NodeID, err.Query)
	case *NodeError:
		observability.LogRunError(cfg.logger, runID, runErr, durationMs, err.NodeID)
	case *MaxIterationsError:
		observability.LogRunError(cfg.logger, runID, runErr, durationMs, err.LastNodeID)
	case *CancellationError:
		observability.LogRunError(cfg.logger, runID, runErr, durationMs, err.NodeID)
	default:
		observability.LogRunError(cfg.logger, runID, runErr, durationMs, "")
	}

	return result, runErr
}

// runLoop is the sequential executor. tracingCtx carries span context;
// fgCtx is the stategraph Context handed to nodes.
func (cg *CompiledGraph[S]) runLoop(tracingCtx context.Context, fgCtx Context, state S, startNode string, cfg *runConfig) (S, int, error) {
	current := startNode
	prevNode := ""
	iterations := 0
	nodeCount := 0

	for current != END {
		iterations++
		if iterations > cfg.maxIterations {
			return state, nodeCount, &MaxIterationsError{
				Max:        cfg.maxIterations,
				LastNodeID: current,
				State:      state,
			}
		}

		select {
		case <-fgCtx.Done():
			return state, nodeCount, &CancellationError{
				NodeID: current,
				State:  state,
				Cause:  fgCtx.Err(),
			}
		default:
		}

		observability.LogNodeStart(cfg.logger, current)

		nodeTracingCtx := tracingCtx
		var nodeSpan trace.Span
		if cfg.tracingEnabled {
			nodeTracingCtx, nodeSpan = cfg.spans.StartNodeSpan(tracingCtx, current)
		}

		// The Resume value is visible only to the first node executed
		// after a resume, which is the node that interrupted.
		resume, hasResume := cfg.resumeValue, cfg.hasResume
		cfg.resumeValue, cfg.hasResume = nil, false

		nodeStart := time.Now()
		var nodeErr error
		state, nodeErr = cg.executeNode(fgCtx, current, state, resume, hasResume)
		nodeDuration := time.Since(nodeStart)

		cfg.metrics.RecordNodeExecution(nodeTracingCtx, current, nodeDuration, nodeErr)
		if cfg.tracingEnabled {
			cfg.spans.EndSpanWithError(nodeSpan, nodeErr)
		}

		if intr, ok := AsInterrupt(nodeErr); ok {
			// Pause: checkpoint the interrupted position so Resume can
			// replay this node, then surface the interrupt.
			if cfg.store != nil {
				if err := cg.saveCheckpoint(cfg, current, prevNode, state, current, intr.Query); err != nil {
					return state, nodeCount, err
				}
			}
			return state, nodeCount, intr
		}

		if nodeErr != nil {
			observability.LogNodeError(cfg.logger, current, nodeErr)
			return state, nodeCount, nodeErr
		}
		observability.LogNodeComplete(cfg.logger, current, float64(nodeDuration.Milliseconds()))
		nodeCount++

		if cfg.onUpdate != nil {
			cfg.onUpdate(current, state)
		}

		next, err := cg.nextNode(fgCtx, state, current)
		if err != nil {
			return state, nodeCount, err
		}

		if cfg.store != nil {
			if err := cg.saveCheckpoint(cfg, current, prevNode, state, next, ""); err != nil {
				return state, nodeCount, err
			}
		}

		prevNode = current
		current = next
	}

	return state, nodeCount, nil
}

// saveCheckpoint persists state after a node. Failures are logged and
// ignored unless WithCheckpointFailureFatal was set.
func (cg *CompiledGraph[S]) saveCheckpoint(cfg *runConfig, nodeID, prevNodeID string, state any, nextNode, interruptQuery string) error {
	stateBytes, err := json.Marshal(state)
	if err != nil {
		if cfg.checkpointFailureFatal {
			return &CheckpointError{NodeID: nodeID, Op: "serialize", Err: err}
		}
		observability.LogCheckpointError(cfg.logger, nodeID, "serialize", err)
		return nil
	}

	cp := checkpoint.New(cfg.threadID, nodeID, stateBytes, nextNode).
		WithPrevNode(prevNodeID)
	if interruptQuery != "" {
		cp = cp.WithInterrupt(interruptQuery)
	}

	if err := cfg.store.Save(cp); err != nil {
		if cfg.checkpointFailureFatal {
			return &CheckpointError{NodeID: nodeID, Op: "save", Err: err}
		}
		observability.LogCheckpointError(cfg.logger, nodeID, "save", err)
		return nil
	}

	observability.LogCheckpoint(cfg.logger, nodeID, len(stateBytes))
	return nil
}

// executeNode runs a single node with panic recovery.
func (cg *CompiledGraph[S]) executeNode(ctx Context, nodeID string, state S, resume any, hasResume bool) (result S, err error) {
	fn, exists := cg.getNode(nodeID)
	if !exists {
		// Unreachable after successful compilation.
		return state, &NodeError{
			NodeID: nodeID,
			Op:     "lookup",
			Err:    fmt.Errorf("node not found: %s", nodeID),
		}
	}

	nodeCtx := ctx
	if ec, ok := ctx.(*executionContext); ok {
		nodeCtx = ec.withNodeID(nodeID, resume, hasResume)
	}

	defer func() {
		if r := recover(); r != nil {
			result = state
			err = &PanicError{
				NodeID: nodeID,
				Value:  r,
				Stack:  string(debug.Stack()),
			}
		}
	}()

	result, err = fn(nodeCtx, state)
	if err != nil {
		if _, ok := AsInterrupt(err); ok {
			return result, err
		}
		return result, &NodeError{NodeID: nodeID, Op: "execute", Err: err}
	}

	return result, nil
}

// nextNode picks the successor of current: the conditional router when
// one exists, the first static edge otherwise.
func (cg *CompiledGraph[S]) nextNode(ctx Context, state S, current string) (string, error) {
	if router, exists := cg.getRouter(current); exists {
		routerCtx := ctx
		if ec, ok := ctx.(*executionContext); ok {
			routerCtx = ec.withNodeID(current, nil, false)
		}

		next := router(routerCtx, state)

		if next == "" {
			return "", &RouterError{
				FromNode: current,
				Returned: next,
				Err:      ErrInvalidRouterResult,
			}
		}
		if next != END {
			if _, exists := cg.getNode(next); !exists {
				return "", &RouterError{
					FromNode: current,
					Returned: next,
					Err:      ErrRouterTargetNotFound,
				}
			}
		}
		return next, nil
	}

	edges := cg.getEdges(current)
	if len(edges) == 0 {
		return "", &NodeError{
			NodeID: current,
			Op:     "routing",
			Err:    fmt.Errorf("no outgoing edge from node %s", current),
		}
	}

	// Multiple static edges from one node would mean parallel
	// execution, which this engine does not do; the first edge wins.
	return edges[0], nil
}
