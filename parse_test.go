package chatmd_test

import (
	"testing"

	"github.com/fwojciec/chatmd"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("unclosed reasoning shows expanded with empty answer", func(t *testing.T) {
		t.Parallel()
		m := chatmd.Markers{Open: "<reason>", Close: "</reason>"}
		got := m.Parse("<reason>thinking...<[UNCLOSED]")
		assert.Equal(t, chatmd.ReasoningOpen, got.State)
		assert.Equal(t, []chatmd.Segment{chatmd.ProseSegment{Text: "thinking...<[UNCLOSED]"}}, got.Reasoning)
		assert.Empty(t, got.Answer)

		s := chatmd.NewRevealState().Observe(got.State)
		assert.True(t, s.Expanded)
	})

	t.Run("closed reasoning with code answer", func(t *testing.T) {
		t.Parallel()
		m := chatmd.Markers{Open: "<reason>", Close: "</reason>"}
		got := m.Parse("<reason>done</reason>Here is code:\n```python\nprint(1)\n```")
		assert.Equal(t, chatmd.ReasoningClosed, got.State)
		assert.Equal(t, []chatmd.Segment{chatmd.ProseSegment{Text: "done"}}, got.Reasoning)
		assert.Equal(t, []chatmd.Segment{
			chatmd.ProseSegment{Text: "Here is code:"},
			chatmd.CodeSegment{Language: "python", Body: "print(1)", Complete: true},
		}, got.Answer)

		s := chatmd.NewRevealState().Observe(got.State)
		assert.Equal(t, chatmd.RevealCollapsedAuto, s.Phase())
	})

	t.Run("buffer ending mid-fence", func(t *testing.T) {
		t.Parallel()
		got := chatmd.Parse("Try:\n```js\nconsole.log(")
		assert.Equal(t, chatmd.ReasoningNone, got.State)
		assert.Empty(t, got.Reasoning)
		assert.Equal(t, chatmd.CodeSegment{Language: "js", Body: "console.log("}, got.Answer[len(got.Answer)-1])
	})

	t.Run("sentinel-only code body is a cursor", func(t *testing.T) {
		t.Parallel()
		got := chatmd.Parse("Code:\n```go\n" + chatmd.Sentinel)
		assert.Equal(t, []chatmd.Segment{
			chatmd.ProseSegment{Text: "Code:"},
			chatmd.CursorSegment{},
		}, got.Answer)
	})

	t.Run("sentinel on an opening fence line trails the open code", func(t *testing.T) {
		t.Parallel()
		got := chatmd.Parse("```py" + chatmd.Sentinel)
		assert.Equal(t, []chatmd.Segment{
			chatmd.CodeSegment{Language: "py"},
			chatmd.CursorSegment{},
		}, got.Answer)
	})

	t.Run("sentinel-only buffer is a cursor", func(t *testing.T) {
		t.Parallel()
		got := chatmd.Parse(chatmd.Sentinel)
		assert.Equal(t, []chatmd.Segment{chatmd.CursorSegment{}}, got.Answer)
	})

	t.Run("reasoning is empty when no marker", func(t *testing.T) {
		t.Parallel()
		got := chatmd.Parse("just an answer")
		assert.Empty(t, got.Reasoning)
		assert.Equal(t, []chatmd.Segment{chatmd.ProseSegment{Text: "just an answer"}}, got.Answer)
	})

	t.Run("reasoning decomposes code too", func(t *testing.T) {
		t.Parallel()
		got := chatmd.Parse("<think>try\n```go\nx")
		assert.Equal(t, chatmd.ReasoningOpen, got.State)
		assert.Equal(t, []chatmd.Segment{
			chatmd.ProseSegment{Text: "try"},
			chatmd.ProseSegment{Text: "x"},
		}, got.Reasoning)
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()
		buf := "<think>a</think>b\n```go\nc\n```\n" + chatmd.Sentinel
		assert.Equal(t, chatmd.Parse(buf), chatmd.Parse(buf))
	})
}
