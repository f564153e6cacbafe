// Package demos contains the five tutorial graphs, each a small
// self-contained workflow built on stategraph. They are library
// functions so both the CLI dispatcher and the tests can drive them;
// the mains under examples/ wire them to live providers.
package demos

import (
	"context"
	"log/slog"
	"sort"
	"strconv"

	"github.com/stategraph/stategraph/pkg/stategraph"
	"github.com/stategraph/stategraph/pkg/stategraph/checkpoint"
	"github.com/stategraph/stategraph/pkg/stategraph/llm"
)

// Deps holds everything a demo needs from its caller. Chat is
// required; the rest depends on the demo (the memory demos need Store
// and ThreadID, the human-in-the-loop demos need Prompter).
type Deps struct {
	// Chat answers the conversation.
	Chat llm.Client

	// Search backs the internet_search tool.
	Search llm.Client

	// Store and ThreadID enable checkpointing.
	Store    checkpoint.Store
	ThreadID string

	// Prompter collects human input when a demo interrupts.
	Prompter Prompter

	// Logger receives run lifecycle events. Optional.
	Logger *slog.Logger

	// OnUpdate observes the state after every node. Optional.
	OnUpdate func(nodeID string, state any)
}

// Prompter asks a human operator a question and returns the answer.
// The CLI implements it with a blocking console read.
type Prompter interface {
	Prompt(query string) (string, error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(query string) (string, error)

// Prompt implements Prompter.
func (f PrompterFunc) Prompt(query string) (string, error) { return f(query) }

// Demo is one runnable tutorial entry.
type Demo struct {
	Number      int
	Name        string
	Description string

	// Build compiles the demo's graph, for introspection and
	// visualization.
	Build func(d Deps) (*stategraph.CompiledGraph[ChatState], error)

	// Run executes the demo on one user input and returns the final
	// state.
	Run func(ctx context.Context, d Deps, input string) (ChatState, error)
}

// all lists every demo in menu order.
var all = []Demo{
	basicDemo,
	toolsDemo,
	memoryDemo,
	humanLoopDemo,
	moodDemo,
}

// List returns the demos sorted by number.
func List() []Demo {
	out := make([]Demo, len(all))
	copy(out, all)
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Lookup finds a demo by number or name. Returns false for unknown
// identifiers; the dispatcher turns that into a non-zero exit.
func Lookup(id string) (Demo, bool) {
	if n, err := strconv.Atoi(id); err == nil {
		for _, d := range all {
			if d.Number == n {
				return d, true
			}
		}
		return Demo{}, false
	}
	for _, d := range all {
		if d.Name == id {
			return d, true
		}
	}
	return Demo{}, false
}

// newRunContext assembles the stategraph context from Deps.
func newRunContext(ctx context.Context, d Deps) stategraph.Context {
	opts := []stategraph.ContextOption{stategraph.WithLLM(d.Chat)}
	if d.Logger != nil {
		opts = append(opts, stategraph.WithLogger(d.Logger))
	}
	if d.Store != nil {
		opts = append(opts, stategraph.WithCheckpointer(d.Store))
	}
	return stategraph.NewContext(ctx, opts...)
}

// runOptions assembles the common run options from Deps.
func runOptions(d Deps, checkpointed bool) []stategraph.RunOption {
	var opts []stategraph.RunOption
	if d.Logger != nil {
		opts = append(opts, stategraph.WithRunLogger(d.Logger))
	}
	if d.OnUpdate != nil {
		opts = append(opts, stategraph.WithUpdateFunc(d.OnUpdate))
	}
	if checkpointed && d.Store != nil {
		opts = append(opts, stategraph.WithThread(d.Store, d.ThreadID))
	}
	return opts
}
