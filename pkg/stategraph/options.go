package stategraph

import (
	"log/slog"

	"github.com/stategraph/stategraph/pkg/stategraph/checkpoint"
	"github.com/stategraph/stategraph/pkg/stategraph/observability"
)

// runConfig holds per-run execution settings.
type runConfig struct {
	maxIterations int

	// Checkpointing
	store                  checkpoint.Store
	threadID               string
	checkpointFailureFatal bool

	// Observability
	logger         *slog.Logger
	metrics        observability.MetricsRecorder
	spans          observability.SpanManager
	tracingEnabled bool

	// Streaming
	onUpdate func(nodeID string, state any)

	// Resume state (set by Resume, not by options).
	resumeValue any
	hasResume   bool
}

// defaultRunConfig returns the default execution configuration.
func defaultRunConfig() runConfig {
	return runConfig{
		maxIterations: 1000,
		metrics:       observability.NoopMetrics{},
		spans:         observability.NoopSpanManager{},
	}
}

// RunOption configures execution behavior.
type RunOption func(*runConfig)

// WithMaxIterations caps the number of node executions for one run.
// Default: 1000. Graphs with tool loops are cyclic, so the cap is what
// turns a runaway loop into a MaxIterationsError instead of a hang.
func WithMaxIterations(n int) RunOption {
	return func(c *runConfig) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}

// WithThread enables checkpointing: state is persisted to store under
// threadID after every node. Runs sharing a thread ID share one
// history.
func WithThread(store checkpoint.Store, threadID string) RunOption {
	return func(c *runConfig) {
		c.store = store
		c.threadID = threadID
	}
}

// WithCheckpointFailureFatal makes checkpoint persistence failures
// abort the run. By default they are logged and execution continues.
func WithCheckpointFailureFatal() RunOption {
	return func(c *runConfig) { c.checkpointFailureFatal = true }
}

// WithRunLogger sets the logger for run/node lifecycle events.
func WithRunLogger(logger *slog.Logger) RunOption {
	return func(c *runConfig) { c.logger = logger }
}

// WithMetrics records node and run metrics through the given recorder.
func WithMetrics(m observability.MetricsRecorder) RunOption {
	return func(c *runConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithTracing emits an OTel span per run and per node.
func WithTracing(spans observability.SpanManager) RunOption {
	return func(c *runConfig) {
		if spans != nil {
			c.spans = spans
			c.tracingEnabled = true
		}
	}
}

// WithUpdateFunc registers a callback invoked with the state snapshot
// after every successful node, in execution order. The callback runs on
// the executor goroutine; keep it fast. The stream package turns this
// into a typed channel.
func WithUpdateFunc(fn func(nodeID string, state any)) RunOption {
	return func(c *runConfig) { c.onUpdate = fn }
}
