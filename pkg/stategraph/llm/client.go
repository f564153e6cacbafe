// Package llm defines the completion types and clients used by graph nodes.
//
// The Client interface is intentionally small: one blocking completion call.
// Hosted providers (Anthropic, OpenAI, Perplexity) are implemented over plain
// HTTP; MockClient serves tests and offline demos.
package llm

import (
	"context"
	"fmt"
)

// Client is a chat completion backend.
// Implementations must be safe for concurrent use.
type Client interface {
	// Complete sends a completion request and blocks until the provider
	// responds. There is no retry or timeout policy here; callers control
	// deadlines through ctx.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// APIError is returned when a provider responds with a non-2xx status.
type APIError struct {
	// Provider is the client name ("anthropic", "openai", "perplexity").
	Provider string
	// StatusCode is the HTTP status returned by the provider.
	StatusCode int
	// Message is the provider's error message, if one could be extracted.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: request failed with status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.StatusCode)
}
