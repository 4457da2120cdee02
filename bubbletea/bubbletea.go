// Package bubbletea provides a Bubble Tea TUI that shows a chat and streams
// an assistant answer into it, with a collapsible reasoning section.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/chatmd"
)

// StreamFunc opens the stream whose deltas the TUI displays. The context is
// cancelled when the user aborts.
type StreamFunc func(ctx context.Context) (chatmd.Stream, error)

// Run creates and runs the Bubble Tea TUI program. It blocks until the
// program exits and returns the final model. The context is used for
// graceful shutdown: when cancelled, the program quits.
func Run(ctx context.Context, m Model) (Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	return m, err
}

// StreamEventMsg wraps a streaming event for delivery to the Bubble Tea model.
type StreamEventMsg struct {
	Event chatmd.Event
}

// StreamDoneMsg signals that the stream has ended.
type StreamDoneMsg struct {
	Err error
}

// startStreamMsg asks the model to open its stream.
type startStreamMsg struct{}
