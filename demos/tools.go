package demos

import (
	"encoding/json"
	"fmt"

	"github.com/stategraph/stategraph/pkg/stategraph"
	"github.com/stategraph/stategraph/pkg/stategraph/llm"
	"github.com/stategraph/stategraph/pkg/stategraph/registry"
)

// ToolFunc executes one tool call. Tools get a pointer to the node's
// working copy of the state so they can update scalar fields (the
// change_mood tool does); the returned string becomes the tool-role
// message content.
type ToolFunc func(ctx stategraph.Context, state *ChatState, args json.RawMessage) (string, error)

// Tool schemas sent to the model.

var internetSearchTool = llm.Tool{
	Name:        "internet_search",
	Description: "Search the internet for information about the given question.",
	Parameters: json.RawMessage(`{
		"type": "object",
		"properties": {
			"question": {
				"type": "string",
				"description": "The question to search for information about."
			}
		},
		"required": ["question"]
	}`),
}

var humanAssistanceTool = llm.Tool{
	Name:        "human_assistance",
	Description: "Request assistance from a human.",
	Parameters: json.RawMessage(`{
		"type": "object",
		"properties": {
			"query": {
				"type": "string",
				"description": "The question to ask the human."
			}
		},
		"required": ["query"]
	}`),
}

var changeMoodTool = llm.Tool{
	Name:        "change_mood",
	Description: "Change the mood of the agent.",
	Parameters: json.RawMessage(`{
		"type": "object",
		"properties": {
			"mood": {
				"type": "string",
				"description": "The mood to change to."
			}
		},
		"required": ["mood"]
	}`),
}

// newInternetSearch builds the internet_search implementation on top
// of the search client (Perplexity's sonar answers with live web
// results).
func newInternetSearch(search llm.Client) ToolFunc {
	return func(ctx stategraph.Context, _ *ChatState, args json.RawMessage) (string, error) {
		if search == nil {
			return "", fmt.Errorf("internet_search: no search client configured")
		}

		var params struct {
			Question string `json:"question"`
		}
		if err := llm.DecodeArgs(args, &params); err != nil {
			return "", err
		}

		resp, err := search.Complete(ctx, llm.CompletionRequest{
			SystemPrompt: "You are a helpful assistant, searching the internet for information to answer the user's question.",
			Messages:     []llm.Message{{Role: llm.RoleUser, Content: params.Question}},
		})
		if err != nil {
			return "", fmt.Errorf("internet_search: %w", err)
		}
		return resp.Content, nil
	}
}

// humanAssistance pauses the run and returns the operator's answer
// verbatim once the graph resumes.
func humanAssistance(ctx stategraph.Context, _ *ChatState, args json.RawMessage) (string, error) {
	var params struct {
		Query string `json:"query"`
	}
	if err := llm.DecodeArgs(args, &params); err != nil {
		return "", err
	}
	return stategraph.Interrupt(ctx, params.Query)
}

// changeMood updates the agent's mood in state.
func changeMood(_ stategraph.Context, state *ChatState, args json.RawMessage) (string, error) {
	var params struct {
		Mood string `json:"mood"`
	}
	if err := llm.DecodeArgs(args, &params); err != nil {
		return "", err
	}
	state.Mood = params.Mood
	return fmt.Sprintf("Mood changed to %s", params.Mood), nil
}

// newToolNode builds the tool-execution node: it runs the single tool
// call carried by the last assistant message and appends the result as
// a tool-role message. The model node asks for at most one call per
// turn, so only the first is executed.
func newToolNode(tools *registry.Registry[string, ToolFunc]) stategraph.NodeFunc[ChatState] {
	return func(ctx stategraph.Context, s ChatState) (ChatState, error) {
		last, ok := llm.LastMessage(s.Messages)
		if !ok || len(last.ToolCalls) == 0 {
			return s, fmt.Errorf("tool node reached without a pending tool call")
		}

		call := last.ToolCalls[0]
		tool, ok := tools.Get(call.Name)
		if !ok {
			return s, fmt.Errorf("unknown tool: %s", call.Name)
		}

		result, err := tool(ctx, &s, call.Arguments)
		if err != nil {
			return s, err
		}

		s.Messages = llm.Append(s.Messages, llm.Message{
			Role:       llm.RoleTool,
			Content:    result,
			ToolCallID: call.ID,
			Name:       call.Name,
		})
		return s, nil
	}
}

// newModelNode builds the chat node: system prompt from the current
// mood, full history, and the given tool schemas.
func newModelNode(tools []llm.Tool) stategraph.NodeFunc[ChatState] {
	return func(ctx stategraph.Context, s ChatState) (ChatState, error) {
		client := ctx.LLM()
		if client == nil {
			return s, fmt.Errorf("no chat client configured")
		}

		resp, err := client.Complete(ctx, llm.CompletionRequest{
			SystemPrompt: systemPrompt(s.Mood),
			Messages:     s.Messages,
			Tools:        tools,
		})
		if err != nil {
			return s, err
		}

		s.Messages = llm.Append(s.Messages, resp.AsMessage())
		return s, nil
	}
}

// toolsRouter routes to the tool node while the last assistant turn
// carries a tool call, and to END otherwise.
func toolsRouter(_ stategraph.Context, s ChatState) string {
	if llm.HasToolCalls(s.Messages) {
		return "tools"
	}
	return stategraph.END
}
