package main

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"github.com/stategraph/stategraph/demos"
	"github.com/stategraph/stategraph/pkg/stategraph/llm"
)

// printer writes conversation messages with colored role headers.
type printer struct {
	out     io.Writer
	profile termenv.Profile
}

func newPrinter(out io.Writer) *printer {
	return &printer{
		out:     out,
		profile: termenv.ColorProfile(),
	}
}

// printLast prints the newest message in the state. Each node appends
// exactly one message, so printing the last one per update streams the
// whole conversation without repeats.
func (p *printer) printLast(state demos.ChatState) {
	if msg, ok := llm.LastMessage(state.Messages); ok {
		p.printMessage(msg)
	}
}

func (p *printer) printMessage(msg llm.Message) {
	header := p.profile.String(roleLabel(msg.Role)).Bold().Foreground(p.profile.Color(roleColor(msg.Role)))

	switch {
	case msg.Role == llm.RoleTool:
		fmt.Fprintf(p.out, "%s (%s): %s\n", header, msg.Name, msg.Content)
	case len(msg.ToolCalls) > 0:
		fmt.Fprintf(p.out, "%s: %s\n", header, msg.Content)
		for _, tc := range msg.ToolCalls {
			fmt.Fprintf(p.out, "  -> %s(%s)\n", tc.Name, string(tc.Arguments))
		}
	default:
		fmt.Fprintf(p.out, "%s: %s\n", header, msg.Content)
	}
}

func roleLabel(role llm.Role) string {
	switch role {
	case llm.RoleUser:
		return "User"
	case llm.RoleAssistant:
		return "Assistant"
	case llm.RoleTool:
		return "Tool"
	case llm.RoleSystem:
		return "System"
	}
	return string(role)
}

func roleColor(role llm.Role) string {
	switch role {
	case llm.RoleUser:
		return "6"
	case llm.RoleAssistant:
		return "2"
	case llm.RoleTool:
		return "3"
	}
	return "7"
}
