package llm

import (
	"context"
	"sync"
	"time"
)

// MockClient is a scriptable Client for tests and offline demos.
// Responses are served in order and cycle when exhausted.
type MockClient struct {
	mu        sync.Mutex
	responses []CompletionResponse
	next      int
	err       error
	requests  []CompletionRequest
}

// NewMockClient creates a mock that always answers with content.
func NewMockClient(content string) *MockClient {
	return &MockClient{
		responses: []CompletionResponse{{Content: content, FinishReason: "stop", Model: "mock"}},
	}
}

// WithResponses replaces the scripted responses with plain-text answers.
func (m *MockClient) WithResponses(contents ...string) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = m.responses[:0]
	for _, c := range contents {
		m.responses = append(m.responses, CompletionResponse{Content: c, FinishReason: "stop", Model: "mock"})
	}
	m.next = 0
	return m
}

// WithScript replaces the scripted responses with full responses,
// allowing tool calls to be scripted.
func (m *MockClient) WithScript(responses ...CompletionResponse) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = responses
	m.next = 0
	return m
}

// WithError makes every call fail with err.
func (m *MockClient) WithError(err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// Complete implements Client.
func (m *MockClient) Complete(_ context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if m.err != nil {
		return nil, m.err
	}
	if len(m.responses) == 0 {
		return &CompletionResponse{FinishReason: "stop", Model: "mock"}, nil
	}

	resp := m.responses[m.next%len(m.responses)]
	m.next++
	resp.Duration = time.Millisecond
	if resp.Model == "" {
		resp.Model = "mock"
	}
	if resp.FinishReason == "" {
		resp.FinishReason = "stop"
	}
	return &resp, nil
}

// CallCount returns how many completions have been requested.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of every request seen, in order.
func (m *MockClient) Requests() []CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]CompletionRequest, len(m.requests))
	copy(out, m.requests)
	return out
}
