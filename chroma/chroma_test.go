package chroma_test

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatmd"
	"github.com/fwojciec/chatmd/chroma"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func stripANSI(s string) string {
	re := regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	return re.ReplaceAllString(s, "")
}

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.ANSI)
	os.Exit(m.Run())
}

func TestHighlighter_Highlight(t *testing.T) {
	t.Parallel()

	h := chroma.NewHighlighter(chroma.DefaultStyle, chatmd.DefaultTheme())

	t.Run("known language adds colors", func(t *testing.T) {
		t.Parallel()
		src := "func main() {}"
		got := h.Highlight(src, "go")
		assert.NotEqual(t, src, got)
		assert.Equal(t, src, stripANSI(got))
	})

	t.Run("unknown language is plain", func(t *testing.T) {
		t.Parallel()
		src := "whatever this is"
		assert.Equal(t, src, h.Highlight(src, "no-such-language"))
	})

	t.Run("missing language is plain", func(t *testing.T) {
		t.Parallel()
		src := "x = 1"
		assert.Equal(t, src, h.Highlight(src, ""))
	})

	t.Run("unknown style falls back", func(t *testing.T) {
		t.Parallel()
		hf := chroma.NewHighlighter("no-such-style", chatmd.DefaultTheme())
		assert.Equal(t, "print(1)", stripANSI(hf.Highlight("print(1)", "python")))
	})
}

func TestHighlighter_Render(t *testing.T) {
	t.Parallel()

	h := chroma.NewHighlighter(chroma.DefaultStyle, chatmd.DefaultTheme())

	t.Run("complete block has label and gutter", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(h.Render(chatmd.CodeSegment{Language: "python", Body: "a = 1\nb = 2", Complete: true}))
		lines := strings.Split(out, "\n")
		assert.Equal(t, []string{"python", "│ a = 1", "│ b = 2"}, lines)
	})

	t.Run("incomplete block shows pending marker", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(h.Render(chatmd.CodeSegment{Language: "js", Body: "console.log("}))
		assert.Contains(t, out, "│ console.log(")
		assert.True(t, strings.HasSuffix(out, "…"))
	})

	t.Run("trailing sentinel bypasses the lexer", func(t *testing.T) {
		t.Parallel()
		out := h.Render(chatmd.CodeSegment{Language: "python", Body: "print(1)" + chatmd.Sentinel})
		assert.NotContains(t, out, "48;5;")
		assert.Contains(t, stripANSI(out), "│ print(1)"+chatmd.Sentinel)
	})

	t.Run("no label without language", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(h.Render(chatmd.CodeSegment{Body: "plain", Complete: true}))
		assert.Equal(t, "│ plain", out)
	})

	t.Run("long lines are not reflowed", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("x", 200)
		out := stripANSI(h.Render(chatmd.CodeSegment{Body: long, Complete: true}))
		assert.Equal(t, "│ "+long, out)
	})
}
