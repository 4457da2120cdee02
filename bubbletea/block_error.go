package bubbletea

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatmd"
)

var _ MessageBlock = (*ErrorBlock)(nil)

// ErrorBlock reports a failed stream below the answer it interrupted.
type ErrorBlock struct {
	err     error
	partial bool
	styles  Styles
}

// NewErrorBlock creates an ErrorBlock. partial reports whether some of the
// answer arrived before the failure.
func NewErrorBlock(err error, partial bool, styles Styles) *ErrorBlock {
	return &ErrorBlock{err: err, partial: partial, styles: styles}
}

func (b *ErrorBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *ErrorBlock) View(width int) string {
	title := "Stream interrupted: "
	if errors.Is(b.err, chatmd.ErrStreamClosed) {
		title = "Stream closed: "
	}
	lines := []string{b.styles.Error.Render(title + b.err.Error())}
	if b.partial {
		lines = append(lines, b.styles.Muted.Render("The answer above is incomplete."))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}
