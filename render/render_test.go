package render_test

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatmd"
	"github.com/fwojciec/chatmd/render"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stripANSI(s string) string {
	re := regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	return re.ReplaceAllString(s, "")
}

var blink = regexp.MustCompile(`\x1b\[([0-9]+;)*5(;[0-9]+)*m`)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.ANSI)
	os.Exit(m.Run())
}

func TestRenderer_Segments(t *testing.T) {
	t.Parallel()

	r := render.New(chatmd.DefaultTheme())

	t.Run("empty sequence renders nothing", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", r.Segments(nil, 80))
	})

	t.Run("prose then code then prose", func(t *testing.T) {
		t.Parallel()
		segs := []chatmd.Segment{
			chatmd.ProseSegment{Text: "Here:"},
			chatmd.CodeSegment{Language: "go", Body: "x := 1", Complete: true},
			chatmd.ProseSegment{Text: "Done."},
		}
		out := stripANSI(r.Segments(segs, 80))
		here := strings.Index(out, "Here:")
		code := strings.Index(out, "x := 1")
		done := strings.Index(out, "Done.")
		require.True(t, here >= 0 && code >= 0 && done >= 0, out)
		assert.Less(t, here, code)
		assert.Less(t, code, done)
		assert.Contains(t, out, "│ x := 1")
	})

	t.Run("cursor blinks", func(t *testing.T) {
		t.Parallel()
		out := r.Segments([]chatmd.Segment{chatmd.CursorSegment{}}, 80)
		assert.Equal(t, chatmd.Sentinel, stripANSI(out))
		assert.Regexp(t, blink, out)
	})

	t.Run("cursor attaches to preceding block", func(t *testing.T) {
		t.Parallel()
		segs := []chatmd.Segment{chatmd.ProseSegment{Text: "typing"}, chatmd.CursorSegment{}}
		assert.Equal(t, "typing"+chatmd.Sentinel, stripANSI(r.Segments(segs, 80)))
	})

	t.Run("sentinel inside prose becomes cursor", func(t *testing.T) {
		t.Parallel()
		out := r.Segments([]chatmd.Segment{chatmd.ProseSegment{Text: "almost " + chatmd.Sentinel}}, 80)
		assert.Regexp(t, blink, out)
		assert.Equal(t, 1, strings.Count(out, chatmd.Sentinel))
	})

	t.Run("incomplete code keeps body", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(r.Segments([]chatmd.Segment{chatmd.CodeSegment{Language: "js", Body: "console.log("}}, 80))
		assert.Contains(t, out, "console.log(")
		assert.Contains(t, out, "…")
	})

	t.Run("cursor in live code is not styled as code", func(t *testing.T) {
		t.Parallel()
		seg := chatmd.CodeSegment{Language: "python", Body: "print(1)" + chatmd.Sentinel}
		out := r.Segments([]chatmd.Segment{seg}, 80)
		loc := blink.FindStringIndex(out)
		require.NotNil(t, loc, out)
		assert.NotContains(t, out[:loc[0]], "48;5;")
		assert.Contains(t, stripANSI(out), "print(1)"+chatmd.Sentinel)
		assert.Equal(t, 1, strings.Count(out, chatmd.Sentinel))
	})

	t.Run("math segment is styled", func(t *testing.T) {
		t.Parallel()
		out := r.Segments([]chatmd.Segment{chatmd.MathSegment{Text: "x^2"}}, 80)
		assert.Equal(t, "x^2", stripANSI(out))
	})
}

func TestRenderer_Text(t *testing.T) {
	t.Parallel()

	r := render.New(chatmd.DefaultTheme())

	t.Run("inline math survives emphasis parsing", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(r.Text("where $a_1 * b_1$ holds", 80))
		assert.Equal(t, "where a_1 * b_1 holds", out)
	})

	t.Run("display math is centered", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(r.Text("Energy:\n\n$$E = mc^2$$\n\nas shown.", 40))
		lines := strings.Split(out, "\n")
		var mathLine string
		for _, line := range lines {
			if strings.Contains(line, "E = mc^2") {
				mathLine = line
			}
		}
		require.NotEmpty(t, mathLine)
		assert.Equal(t, strings.Repeat(" ", 16)+"E = mc^2", mathLine)
		assert.Contains(t, out, "Energy:")
		assert.Contains(t, out, "as shown.")
	})

	t.Run("unclosed math stays prose", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(r.Text("cost is $5 today", 80))
		assert.Equal(t, "cost is $5 today", out)
	})

	t.Run("streaming fence renders as code", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(r.Text("Try:\n```python\nprint(1)", 80))
		assert.Contains(t, out, "python")
		assert.Contains(t, out, "│ print(1)")
		assert.Contains(t, out, "…")
	})

	t.Run("lone sentinel is a cursor", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, chatmd.Sentinel, stripANSI(r.Text(chatmd.Sentinel, 80)))
	})

	t.Run("non-positive width defaults", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "hi", stripANSI(r.Text("hi", 0)))
	})

	t.Run("code style option", func(t *testing.T) {
		t.Parallel()
		rr := render.New(chatmd.DefaultTheme(), render.WithCodeStyle("github"))
		assert.Contains(t, stripANSI(rr.Text("```go\nx := 1\n```", 80)), "│ x := 1")
	})
}
