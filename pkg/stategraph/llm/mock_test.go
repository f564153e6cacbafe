package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMockClient_Default tests the single-answer constructor.
func TestMockClient_Default(t *testing.T) {
	mock := NewMockClient("hello")

	resp, err := mock.Complete(context.Background(), CompletionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Content)
	assert.Equal(t, "mock", resp.Model)
	assert.Equal(t, "stop", resp.FinishReason)
}

// TestMockClient_ResponsesCycle tests that scripted responses repeat.
func TestMockClient_ResponsesCycle(t *testing.T) {
	mock := NewMockClient("").WithResponses("one", "two")

	var got []string
	for i := 0; i < 4; i++ {
		resp, err := mock.Complete(context.Background(), CompletionRequest{})
		require.NoError(t, err)
		got = append(got, resp.Content)
	}
	assert.Equal(t, []string{"one", "two", "one", "two"}, got)
}

// TestMockClient_Script tests scripting full responses with tool calls.
func TestMockClient_Script(t *testing.T) {
	mock := NewMockClient("").WithScript(
		CompletionResponse{
			ToolCalls: []ToolCall{
				{ID: "tc1", Name: "internet_search", Arguments: json.RawMessage(`{"query":"go"}`)},
			},
			FinishReason: "tool_use",
		},
		CompletionResponse{Content: "final answer"},
	)

	resp, err := mock.Complete(context.Background(), CompletionRequest{})
	require.NoError(t, err)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "tool_use", resp.FinishReason)

	resp, err = mock.Complete(context.Background(), CompletionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "final answer", resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
}

// TestMockClient_Error tests the error mode.
func TestMockClient_Error(t *testing.T) {
	boom := errors.New("provider down")
	mock := NewMockClient("unused").WithError(boom)

	_, err := mock.Complete(context.Background(), CompletionRequest{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, mock.CallCount())
}

// TestMockClient_RecordsRequests tests request capture.
func TestMockClient_RecordsRequests(t *testing.T) {
	mock := NewMockClient("ok")

	_, err := mock.Complete(context.Background(), CompletionRequest{
		SystemPrompt: "be brief",
		Messages:     []Message{{Role: RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "be brief", reqs[0].SystemPrompt)
	require.Len(t, reqs[0].Messages, 1)
	assert.Equal(t, "hi", reqs[0].Messages[0].Content)
}
