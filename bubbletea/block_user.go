package bubbletea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*UserMessageBlock)(nil)

const userPrompt = "> "

// UserMessageBlock shows a user turn verbatim: it is never parsed as
// markdown or split for reasoning. Wrapped lines hang under the text, not
// the prompt.
type UserMessageBlock struct {
	text   string
	styles Styles
}

// NewUserMessageBlock creates a UserMessageBlock.
func NewUserMessageBlock(text string, styles Styles) *UserMessageBlock {
	return &UserMessageBlock{text: text, styles: styles}
}

func (b *UserMessageBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *UserMessageBlock) View(width int) string {
	inner := max(width-len(userPrompt), 1)
	body := lipgloss.NewStyle().Width(inner).Render(strings.TrimRight(b.text, "\n"))
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		prefix := strings.Repeat(" ", len(userPrompt))
		if i == 0 {
			prefix = b.styles.UserMsg.Render(userPrompt)
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
