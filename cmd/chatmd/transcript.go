package main

import (
	"strings"

	"github.com/fwojciec/chatmd"
	bt "github.com/fwojciec/chatmd/bubbletea"
	"github.com/fwojciec/chatmd/render"
)

// transcript renders messages outside the TUI using the same blocks the TUI
// shows.
type transcript struct {
	renderer *render.Renderer
	styles   bt.Styles
	app      *app
	// reasoning expands every reasoning section.
	reasoning bool
}

func (a *app) transcript(reasoning bool) *transcript {
	theme := chatmd.DefaultTheme()
	return &transcript{
		renderer:  render.New(theme, render.WithCodeStyle(a.cfg.Render.CodeStyle)),
		styles:    bt.NewStyles(theme),
		app:       a,
		reasoning: reasoning,
	}
}

func (t *transcript) width() int {
	if t.app.cfg.Render.Width <= 0 {
		return 80
	}
	return t.app.cfg.Render.Width
}

// answer renders one complete assistant message.
func (t *transcript) answer(content string) string {
	block := bt.NewAssistantBlock(t.renderer, t.styles, t.app.cfg.ReasoningMarkers(), t.app.logger)
	block.Append(content)
	if t.reasoning && !block.Reveal().Expanded {
		block.Update(bt.ToggleMsg{})
	}
	return block.View(t.width())
}

// chat renders every message of c separated by blank lines.
func (t *transcript) chat(c chatmd.Chat) string {
	parts := make([]string, 0, len(c.Messages))
	for _, msg := range c.Messages {
		switch msg.Role {
		case chatmd.RoleUser:
			parts = append(parts, bt.NewUserMessageBlock(msg.Content, t.styles).View(t.width()))
		case chatmd.RoleAssistant:
			parts = append(parts, t.answer(msg.Content))
		}
	}
	return strings.Join(parts, "\n\n")
}
