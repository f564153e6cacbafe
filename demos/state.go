package demos

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stategraph/stategraph/pkg/stategraph/checkpoint"
	"github.com/stategraph/stategraph/pkg/stategraph/llm"
)

// ChatState is the workflow state threaded through every demo graph:
// the append-only conversation plus the agent's mood (used by the
// state demo, "neutral" elsewhere).
type ChatState struct {
	Messages []llm.Message `json:"messages"`
	Mood     string        `json:"mood,omitempty"`
}

// userTurn appends one user message.
func (s ChatState) userTurn(input string) ChatState {
	s.Messages = llm.Append(s.Messages, llm.Message{Role: llm.RoleUser, Content: input})
	return s
}

const systemPromptFormat = `You are a helpful assistant.
Your current mood is %s. Let it color the tone of your answers.
System time: %s`

// systemPrompt renders the demo system prompt with the agent's mood
// and the wall-clock time.
func systemPrompt(mood string) string {
	if mood == "" {
		mood = "neutral"
	}
	return fmt.Sprintf(systemPromptFormat, mood, time.Now().Format("2006-01-02 15:04:05"))
}

// loadThreadState restores the newest checkpointed state for the
// thread, or returns a fresh state when the thread is new. This is
// what makes conversations with one thread ID cumulative across runs.
func loadThreadState(store checkpoint.Store, threadID string) (ChatState, error) {
	fresh := ChatState{Mood: "neutral"}
	if store == nil || threadID == "" {
		return fresh, nil
	}

	cp, err := store.Latest(threadID)
	if errors.Is(err, checkpoint.ErrNotFound) {
		return fresh, nil
	}
	if err != nil {
		return fresh, fmt.Errorf("load thread %s: %w", threadID, err)
	}

	var state ChatState
	if err := json.Unmarshal(cp.State, &state); err != nil {
		return fresh, fmt.Errorf("decode thread %s state: %w", threadID, err)
	}
	if state.Mood == "" {
		state.Mood = "neutral"
	}
	return state, nil
}
