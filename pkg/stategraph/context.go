package stategraph

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/stategraph/stategraph/pkg/stategraph/checkpoint"
	"github.com/stategraph/stategraph/pkg/stategraph/llm"
)

// Context is the execution context handed to nodes and routers. It
// extends context.Context with the services a node needs and metadata
// about its position in the run.
//
// Context is immutable; the executor derives per-node contexts with an
// enriched logger and updated NodeID.
type Context interface {
	context.Context

	// Logger returns the configured logger, enriched with run and node
	// fields. Never nil: defaults to slog.Default().
	Logger() *slog.Logger

	// LLM returns the chat client, or nil if not configured.
	LLM() llm.Client

	// Checkpointer returns the checkpoint store, or nil if not configured.
	Checkpointer() checkpoint.Store

	// RunID uniquely identifies this run. Auto-generated if not set.
	RunID() string

	// NodeID is the node currently executing; empty before the run starts.
	NodeID() string

	// ResumeValue returns the value supplied to Resume and true while
	// the interrupted node is replaying, otherwise false. Use Interrupt
	// instead of reading this directly.
	ResumeValue() (any, bool)
}

// executionContext is the internal Context implementation.
type executionContext struct {
	context.Context

	logger       *slog.Logger
	llmClient    llm.Client
	checkpointer checkpoint.Store
	runID        string
	nodeID       string

	resumeValue any
	hasResume   bool
}

func (c *executionContext) Logger() *slog.Logger           { return c.logger }
func (c *executionContext) LLM() llm.Client                { return c.llmClient }
func (c *executionContext) Checkpointer() checkpoint.Store { return c.checkpointer }
func (c *executionContext) RunID() string                  { return c.runID }
func (c *executionContext) NodeID() string                 { return c.nodeID }
func (c *executionContext) ResumeValue() (any, bool)       { return c.resumeValue, c.hasResume }

// ContextOption configures a Context.
type ContextOption func(*executionContext)

// WithLogger sets the logger. It is enriched with run_id and node_id
// during execution.
func WithLogger(logger *slog.Logger) ContextOption {
	return func(c *executionContext) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLLM sets the chat client available to nodes via ctx.LLM().
func WithLLM(client llm.Client) ContextOption {
	return func(c *executionContext) { c.llmClient = client }
}

// WithCheckpointer sets the checkpoint store available via
// ctx.Checkpointer(). Note this only exposes the store to nodes; to
// have the engine persist state, pass WithThread to Run.
func WithCheckpointer(store checkpoint.Store) ContextOption {
	return func(c *executionContext) { c.checkpointer = store }
}

// WithRunID sets the run identifier used in logs and traces.
func WithRunID(id string) ContextOption {
	return func(c *executionContext) { c.runID = id }
}

// NewContext wraps a standard context with stategraph services.
//
//	ctx := stategraph.NewContext(context.Background(),
//	    stategraph.WithLLM(client),
//	    stategraph.WithLogger(logger))
func NewContext(ctx context.Context, opts ...ContextOption) Context {
	ec := &executionContext{
		Context: ctx,
		logger:  slog.Default(),
		runID:   uuid.New().String(),
	}
	for _, opt := range opts {
		opt(ec)
	}
	return ec
}

// withNodeID derives a per-node context with an enriched logger.
// resume carries the Resume value into the replayed node only.
func (c *executionContext) withNodeID(nodeID string, resume any, hasResume bool) *executionContext {
	return &executionContext{
		Context:      c.Context,
		logger:       c.logger.With("run_id", c.runID, "node_id", nodeID),
		llmClient:    c.llmClient,
		checkpointer: c.checkpointer,
		runID:        c.runID,
		nodeID:       nodeID,
		resumeValue:  resume,
		hasResume:    hasResume,
	}
}

// Interrupt pauses the run to ask a human operator for input. On the
// first pass it returns an *InterruptError, which the engine
// checkpoints and surfaces to the caller. When the node replays via
// Resume, Interrupt returns the supplied answer instead.
func Interrupt(ctx Context, query string) (string, error) {
	if v, ok := ctx.ResumeValue(); ok {
		if s, isString := v.(string); isString {
			return s, nil
		}
		return "", &NodeError{NodeID: ctx.NodeID(), Op: "resume",
			Err: fmt.Errorf("resume value is %T, want string", v)}
	}
	return "", &InterruptError{NodeID: ctx.NodeID(), Query: query}
}
