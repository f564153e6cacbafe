package llm

import (
	"net/http"
	"os"
)

const (
	perplexityBaseURL      = "https://api.perplexity.ai"
	perplexityDefaultModel = "sonar"
)

// NewPerplexity creates a client for the Perplexity API, which speaks
// the chat-completions wire format. The sonar models answer with live
// web search results, so the demos use this client as their
// internet_search backend.
//
// The API key is read from PERPLEXITY_API_KEY when apiKey is empty.
func NewPerplexity(apiKey string, opts ...OpenAIOption) *OpenAI {
	if apiKey == "" {
		apiKey = os.Getenv("PERPLEXITY_API_KEY")
	}
	p := &OpenAI{
		name:    "perplexity",
		apiKey:  apiKey,
		baseURL: perplexityBaseURL,
		model:   perplexityDefaultModel,
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
