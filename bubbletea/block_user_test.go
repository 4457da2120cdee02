package bubbletea_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatmd"
	bt "github.com/fwojciec/chatmd/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMessageBlock_View(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(chatmd.DefaultTheme())

	t.Run("prompt prefix", func(t *testing.T) {
		t.Parallel()
		view := stripANSI(bt.NewUserMessageBlock("hello world", styles).View(80))
		assert.True(t, strings.HasPrefix(view, "> hello world"))
	})

	t.Run("every line fills the width", func(t *testing.T) {
		t.Parallel()
		view := bt.NewUserMessageBlock("one\ntwo", styles).View(40)
		lines := strings.Split(view, "\n")
		require.Len(t, lines, 2)
		for _, line := range lines {
			assert.Equal(t, 40, lipgloss.Width(line))
		}
	})

	t.Run("text is shown verbatim", func(t *testing.T) {
		t.Parallel()
		view := stripANSI(bt.NewUserMessageBlock("**not bold** <think>x</think>", styles).View(80))
		assert.Contains(t, view, "**not bold** <think>x</think>")
	})

	t.Run("wrapped lines hang under the text", func(t *testing.T) {
		t.Parallel()
		text := "short words that keep going and going beyond the viewport width easily"
		lines := strings.Split(stripANSI(bt.NewUserMessageBlock(text, styles).View(30)), "\n")
		require.Greater(t, len(lines), 1)
		assert.True(t, strings.HasPrefix(lines[0], "> short"))
		for _, line := range lines[1:] {
			assert.True(t, strings.HasPrefix(line, "  "), "continuation %q", line)
		}
		assert.Contains(t, strings.Join(lines, " "), "easily")
	})
}
