// Package chroma renders code segments as syntax-highlighted terminal
// blocks using the chroma highlighter and lipgloss for framing.
package chroma

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatmd"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// Highlighter highlights code bodies for a fixed chroma style.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
	label     lipgloss.Style
	gutter    lipgloss.Style
	pending   lipgloss.Style
}

// NewHighlighter creates a Highlighter for the named chroma style. Unknown
// style names fall back to chroma's default style.
func NewHighlighter(styleName string, theme chatmd.Theme) *Highlighter {
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	return &Highlighter{
		style:     styles.Get(styleName),
		formatter: formatter,
		label:     lipgloss.NewStyle().Foreground(ansiColor(theme.Code)).Bold(true),
		gutter:    lipgloss.NewStyle().Foreground(ansiColor(theme.Code)).Faint(true),
		pending:   lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

// Highlight returns body with ANSI syntax colors for language. A missing or
// unknown language returns body unchanged: plain rendering, never an error.
func (h *Highlighter) Highlight(body, language string) string {
	if language == "" {
		return body
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		return body
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, body)
	if err != nil {
		return body
	}
	var buf strings.Builder
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return body
	}
	return dropAddedNewline(buf.String(), body)
}

var escape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// dropAddedNewline removes the final newline lexers append to input that
// lacked one. Color resets after it are kept.
func dropAddedNewline(out, body string) string {
	if strings.HasSuffix(body, "\n") {
		return out
	}
	i := strings.LastIndex(out, "\n")
	if i < 0 || escape.ReplaceAllString(out[i+1:], "") != "" {
		return out
	}
	return out[:i] + out[i+1:]
}

// Render draws a code segment: a language label, a gutter in front of
// every highlighted line and, for a fence still streaming, a faint ellipsis
// line. Lines are never reflowed. A trailing sentinel is kept out of the
// lexer and reattached unstyled after the last line.
func (h *Highlighter) Render(seg chatmd.CodeSegment) string {
	var b strings.Builder
	if seg.Language != "" {
		b.WriteString(h.label.Render(seg.Language))
		b.WriteString("\n")
	}

	body, live := strings.CutSuffix(seg.Body, chatmd.Sentinel)
	gutter := h.gutter.Render("│") + " "
	lines := strings.Split(h.Highlight(body, seg.Language), "\n")
	if live {
		lines[len(lines)-1] += chatmd.Sentinel
	}
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(gutter + line)
	}
	if !seg.Complete {
		b.WriteString("\n")
		b.WriteString(h.gutter.Render("╵") + " " + h.pending.Render("…"))
	}
	return b.String()
}
