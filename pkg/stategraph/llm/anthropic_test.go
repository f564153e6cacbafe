package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAnthropic_Complete tests a text completion round trip, including
// headers and wire shape.
func TestAnthropic_Complete(t *testing.T) {
	var gotPath string
	var gotHeaders http.Header
	var gotBody anthropicRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]any{
			"model":       "claude-3-5-sonnet-20240620",
			"stop_reason": "end_turn",
			"content": []map[string]any{
				{"type": "text", "text": "Hello "},
				{"type": "text", "text": "there"},
			},
			"usage": map[string]int{"input_tokens": 12, "output_tokens": 4},
		})
	}))
	defer server.Close()

	client := NewAnthropic("test-key", WithAnthropicBaseURL(server.URL))

	resp, err := client.Complete(context.Background(), CompletionRequest{
		SystemPrompt: "You are terse.",
		Messages:     []Message{{Role: RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/messages", gotPath)
	assert.Equal(t, "test-key", gotHeaders.Get("X-Api-Key"))
	assert.Equal(t, anthropicVersion, gotHeaders.Get("Anthropic-Version"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))

	assert.Equal(t, anthropicDefaultModel, gotBody.Model)
	assert.Equal(t, anthropicDefaultMaxTokens, gotBody.MaxTokens)
	assert.Equal(t, "You are terse.", gotBody.System)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "user", gotBody.Messages[0].Role)

	// Adjacent text blocks are concatenated.
	assert.Equal(t, "Hello there", resp.Content)
	assert.Equal(t, "end_turn", resp.FinishReason)
	assert.Equal(t, 16, resp.Usage.TotalTokens)
}

// TestAnthropic_ToolUse tests tool definitions on the request and
// tool_use blocks on the response.
func TestAnthropic_ToolUse(t *testing.T) {
	var gotBody anthropicRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]any{
			"model":       "claude-3-5-sonnet-20240620",
			"stop_reason": "tool_use",
			"content": []map[string]any{
				{"type": "text", "text": "Let me search."},
				{
					"type":  "tool_use",
					"id":    "toolu_1",
					"name":  "internet_search",
					"input": map[string]string{"query": "weather"},
				},
			},
			"usage": map[string]int{"input_tokens": 1, "output_tokens": 1},
		})
	}))
	defer server.Close()

	client := NewAnthropic("test-key", WithAnthropicBaseURL(server.URL))

	resp, err := client.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "weather?"}},
		Tools: []Tool{{
			Name:        "internet_search",
			Description: "Search the web",
			Parameters:  json.RawMessage(`{"type":"object"}`),
		}},
	})
	require.NoError(t, err)

	require.Len(t, gotBody.Tools, 1)
	assert.Equal(t, "internet_search", gotBody.Tools[0].Name)
	assert.JSONEq(t, `{"type":"object"}`, string(gotBody.Tools[0].InputSchema))

	assert.Equal(t, "Let me search.", resp.Content)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "toolu_1", resp.ToolCalls[0].ID)
	assert.Equal(t, "internet_search", resp.ToolCalls[0].Name)
	assert.JSONEq(t, `{"query":"weather"}`, string(resp.ToolCalls[0].Arguments))
}

// TestAnthropic_MessageConversion tests the neutral-to-wire mapping for
// tool results and assistant tool calls.
func TestAnthropic_MessageConversion(t *testing.T) {
	msgs := toAnthropicMessages([]Message{
		{Role: RoleSystem, Content: "dropped"},
		{Role: RoleUser, Content: "search for go"},
		{Role: RoleAssistant, Content: "on it", ToolCalls: []ToolCall{
			{ID: "toolu_1", Name: "internet_search", Arguments: json.RawMessage(`{"query":"go"}`)},
		}},
		{Role: RoleTool, ToolCallID: "toolu_1", Name: "internet_search", Content: "results"},
	})

	require.Len(t, msgs, 3)

	assert.Equal(t, "user", msgs[0].Role)
	assert.Equal(t, "search for go", msgs[0].Content[0].Text)

	assert.Equal(t, "assistant", msgs[1].Role)
	require.Len(t, msgs[1].Content, 2)
	assert.Equal(t, "text", msgs[1].Content[0].Type)
	assert.Equal(t, "tool_use", msgs[1].Content[1].Type)
	assert.Equal(t, "toolu_1", msgs[1].Content[1].ID)

	// Tool results ride as user-role tool_result blocks.
	assert.Equal(t, "user", msgs[2].Role)
	assert.Equal(t, "tool_result", msgs[2].Content[0].Type)
	assert.Equal(t, "toolu_1", msgs[2].Content[0].ToolUseID)
	assert.Equal(t, "results", msgs[2].Content[0].Content)
}

// TestAnthropic_APIError tests non-2xx handling.
func TestAnthropic_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "rate limited"},
		})
	}))
	defer server.Close()

	client := NewAnthropic("test-key", WithAnthropicBaseURL(server.URL))

	_, err := client.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "anthropic", apiErr.Provider)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "rate limited", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "rate limited")
}

// TestAnthropic_ModelOverride tests per-request model selection.
func TestAnthropic_ModelOverride(t *testing.T) {
	var gotBody anthropicRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"model":       "claude-3-opus-20240229",
			"stop_reason": "end_turn",
			"content":     []map[string]any{{"type": "text", "text": "ok"}},
			"usage":       map[string]int{},
		})
	}))
	defer server.Close()

	client := NewAnthropic("test-key", WithAnthropicBaseURL(server.URL))

	_, err := client.Complete(context.Background(), CompletionRequest{
		Model:    "claude-3-opus-20240229",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "claude-3-opus-20240229", gotBody.Model)
}
