package goldmark_test

import (
	"os"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatmd"
	"github.com/fwojciec/chatmd/goldmark"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var csi = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return csi.ReplaceAllString(s, "")
}

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.ANSI)
	os.Exit(m.Run())
}

func TestRenderer_Render_Content(t *testing.T) {
	t.Parallel()

	r := goldmark.New(chatmd.DefaultTheme())

	tests := []struct {
		name    string
		src     string
		width   int
		want    []string
		notWant []string
	}{
		{name: "plain paragraph", src: "hello world", width: 80, want: []string{"hello world"}},
		{name: "bold", src: "**bold**", width: 80, want: []string{"bold"}, notWant: []string{"**"}},
		{name: "italic", src: "*italic*", width: 80, want: []string{"italic"}, notWant: []string{"*"}},
		{name: "bold italic", src: "***both***", width: 80, want: []string{"both"}, notWant: []string{"*"}},
		{name: "inline code", src: "run `make`", width: 80, want: []string{"run make"}, notWant: []string{"`"}},
		{name: "strikethrough", src: "~~gone~~", width: 80, want: []string{"gone"}, notWant: []string{"~~"}},
		{name: "link", src: "[docs](https://example.com)", width: 80, want: []string{"docs", "(https://example.com)"}},
		{name: "image", src: "![diagram](https://example.com/d.png)", width: 80, want: []string{"diagram", "example.com/d.png"}},
		{name: "autolink", src: "<https://example.com>", width: 80, want: []string{"https://example.com"}},
		{name: "headings", src: "# Title\n\n### Section", width: 80, want: []string{"Title", "Section"}, notWant: []string{"#"}},
		{name: "ordered list", src: "3. third\n4. fourth", width: 80, want: []string{"3. third", "4. fourth"}},
		{name: "nested list", src: "- outer\n  - inner", width: 80, want: []string{"- outer", "  - inner"}},
		{name: "task list", src: "- [x] done\n- [ ] todo", width: 80, want: []string{"[x] done", "[ ] todo"}},
		{name: "indented code keeps long lines", src: "intro\n\n    a_very_long_identifier_here()", width: 10, want: []string{"│ a_very_long_identifier_here()"}},
		{name: "thematic break", src: "above\n\n---\n\nbelow", width: 80, want: []string{"above", "───", "below"}},
		{name: "sentinel passes through", src: "typing" + chatmd.Sentinel, width: 80, want: []string{"typing" + chatmd.Sentinel}},
		{name: "width zero", src: "hello world", width: 0, want: []string{"hello world"}},
		{name: "math stays literal", src: `where \(x\) and $y$`, width: 80, want: []string{"$y$"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := stripANSI(r.Render(tt.src, tt.width))
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestRenderer_Render_Layout(t *testing.T) {
	t.Parallel()

	r := goldmark.New(chatmd.DefaultTheme())

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, r.Render("", 80))
	})

	t.Run("heading is styled unlike a paragraph", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t, r.Render("Title", 80), r.Render("# Title", 80))
	})

	t.Run("blocks are separated by one blank line", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(r.Render("first\n\nsecond", 10))
		lines := strings.Split(out, "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "first", strings.TrimRight(lines[0], " "))
		assert.Empty(t, strings.TrimSpace(lines[1]))
		assert.Equal(t, "second", strings.TrimRight(lines[2], " "))
	})

	t.Run("paragraph wraps to width", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(r.Render("one two three four five six seven eight nine ten", 20))
		lines := strings.Split(out, "\n")
		assert.Greater(t, len(lines), 1)
		for _, line := range lines {
			assert.LessOrEqual(t, lipgloss.Width(line), 20)
		}
	})

	t.Run("list continuation lines align after the marker", func(t *testing.T) {
		t.Parallel()
		src := "- this list item is long enough that it has to wrap onto more lines"
		lines := strings.Split(stripANSI(r.Render(src, 30)), "\n")
		require.Greater(t, len(lines), 1)
		assert.True(t, strings.HasPrefix(lines[0], "- "))
		for _, line := range lines[1:] {
			assert.True(t, strings.HasPrefix(line, "  "), "continuation line %q", line)
		}
	})

	t.Run("table aligns columns", func(t *testing.T) {
		t.Parallel()
		src := "| name | value |\n| --- | --- |\n| a | 1 |\n| longer | 22 |"
		lines := strings.Split(stripANSI(r.Render(src, 80)), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "name   │ value", lines[0])
		assert.Equal(t, "───────┼──────", lines[1])
		assert.Equal(t, "a      │ 1", lines[2])
		assert.Equal(t, "longer │ 22", lines[3])
	})

	t.Run("blockquote is prefixed with a bar", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(r.Render("> quoted words\n>\n> more", 80))
		lines := strings.Split(out, "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "│ quoted words", strings.TrimRight(lines[0], " "))
		assert.Equal(t, "│", strings.TrimRight(lines[1], " "))
		assert.Equal(t, "│ more", strings.TrimRight(lines[2], " "))
	})

	t.Run("concurrent use", func(t *testing.T) {
		t.Parallel()
		want := r.Render("**same** input", 40)
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.Equal(t, want, r.Render("**same** input", 40))
			}()
		}
		wg.Wait()
	})
}
