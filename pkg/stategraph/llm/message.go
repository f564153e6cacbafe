package llm

import "encoding/json"

// Role identifies the message sender.
type Role string

// Standard message roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one conversation turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// ToolCalls is set on assistant messages that request tool execution.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// ToolCallID links a tool-role message back to the call it answers.
	ToolCallID string `json:"tool_call_id,omitempty"`

	// Name is the tool name on tool-role messages.
	Name string `json:"name,omitempty"`
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Append returns history with msgs appended.
// This is the only way conversation state grows: entries are never
// removed or reordered within a run.
func Append(history []Message, msgs ...Message) []Message {
	out := make([]Message, 0, len(history)+len(msgs))
	out = append(out, history...)
	out = append(out, msgs...)
	return out
}

// LastMessage returns the most recent message and true, or a zero
// message and false if history is empty.
func LastMessage(history []Message) (Message, bool) {
	if len(history) == 0 {
		return Message{}, false
	}
	return history[len(history)-1], true
}

// HasToolCalls reports whether the last message in history is an
// assistant turn carrying at least one tool call.
func HasToolCalls(history []Message) bool {
	last, ok := LastMessage(history)
	return ok && last.Role == RoleAssistant && len(last.ToolCalls) > 0
}
