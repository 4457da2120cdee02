// Package render turns decomposed segments into ANSI terminal output.
// Prose goes through goldmark, code through chroma, math is styled in place
// and the live-edge cursor blinks.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatmd"
	"github.com/fwojciec/chatmd/chroma"
	"github.com/fwojciec/chatmd/goldmark"
	"github.com/mattn/go-runewidth"
)

// Inline math is swapped for private-use placeholders before markdown
// rendering so TeX never reaches the emphasis parser.
const (
	placeholderOpen  = "\uE000"
	placeholderClose = "\uE001"
)

// Renderer renders segment sequences for one theme.
type Renderer struct {
	theme    chatmd.Theme
	markdown *goldmark.Renderer
	code     *chroma.Highlighter
	math     lipgloss.Style
	cursor   lipgloss.Style
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithCodeStyle selects the chroma style used for code segments.
func WithCodeStyle(name string) Option {
	return func(r *Renderer) {
		r.code = chroma.NewHighlighter(name, r.theme)
	}
}

// New creates a Renderer for theme.
func New(theme chatmd.Theme, opts ...Option) *Renderer {
	r := &Renderer{
		theme:    theme,
		markdown: goldmark.New(theme),
		code:     chroma.NewHighlighter(chroma.DefaultStyle, theme),
		math:     lipgloss.NewStyle().Foreground(ansiColor(theme.Math)).Italic(true),
		cursor:   lipgloss.NewStyle().Foreground(ansiColor(theme.Cursor)).Blink(true),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

// Text decomposes and normalizes text, then renders it.
func (r *Renderer) Text(text string, width int) string {
	return r.Segments(chatmd.NormalizeAll(chatmd.Decompose(text)), width)
}

// Segments renders segs in order, one block per segment, separated by a
// blank line. A trailing cursor attaches to the block before it.
func (r *Renderer) Segments(segs []chatmd.Segment, width int) string {
	if width <= 0 {
		width = 80
	}
	var blocks []string
	for _, seg := range segs {
		switch s := seg.(type) {
		case chatmd.ProseSegment:
			if out := r.prose(s.Text, width); out != "" {
				blocks = append(blocks, out)
			}
		case chatmd.MathSegment:
			blocks = append(blocks, r.Math(s, width))
		case chatmd.CodeSegment:
			blocks = append(blocks, r.code.Render(s))
		case chatmd.CursorSegment:
			if n := len(blocks); n > 0 {
				blocks[n-1] += chatmd.Sentinel
			} else {
				blocks = append(blocks, chatmd.Sentinel)
			}
		}
	}
	return strings.ReplaceAll(strings.Join(blocks, "\n\n"), chatmd.Sentinel, r.Cursor())
}

// Cursor returns the blinking live-edge glyph.
func (r *Renderer) Cursor() string {
	return r.cursor.Render(chatmd.Sentinel)
}

// Math renders one math run. Display math is centered on its own lines;
// inline math is styled without layout.
func (r *Renderer) Math(m chatmd.MathSegment, width int) string {
	text := strings.TrimSpace(m.Text)
	if !m.Display {
		return r.math.Render(text)
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		pad := (width - runewidth.StringWidth(line)) / 2
		if pad < 0 {
			pad = 0
		}
		lines[i] = strings.Repeat(" ", pad) + r.math.Render(line)
	}
	return strings.Join(lines, "\n")
}

// prose renders a prose run: inline math is placed back after markdown
// rendering; display math splits the run into separate blocks.
func (r *Renderer) prose(text string, width int) string {
	var blocks []string
	var md strings.Builder
	var inline []string
	flush := func() {
		if strings.TrimSpace(md.String()) != "" {
			out := r.markdown.Render(md.String(), width)
			for i, m := range inline {
				out = strings.ReplaceAll(out, placeholder(i), m)
			}
			blocks = append(blocks, trimLines(out))
		}
		md.Reset()
		inline = inline[:0]
	}

	for _, seg := range chatmd.SplitMath(text) {
		switch s := seg.(type) {
		case chatmd.ProseSegment:
			md.WriteString(s.Text)
		case chatmd.MathSegment:
			if s.Display {
				flush()
				blocks = append(blocks, r.Math(s, width))
				continue
			}
			md.WriteString(placeholder(len(inline)))
			inline = append(inline, r.Math(s, width))
		}
	}
	flush()
	return strings.Join(blocks, "\n\n")
}

func placeholder(i int) string {
	return fmt.Sprintf("%s%d%s", placeholderOpen, i, placeholderClose)
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
