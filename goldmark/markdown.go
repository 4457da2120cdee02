// Package goldmark renders the prose runs of an answer to ANSI terminal
// text. goldmark (with the GFM extensions) parses the markdown and lipgloss
// styles it. Fenced code normally never reaches this package: the
// decomposer lifts it out first.
package goldmark

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatmd"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Renderer renders markdown prose for one theme. It is safe for concurrent
// use.
type Renderer struct {
	md     goldmark.Markdown
	styles styles
}

type styles struct {
	bold       lipgloss.Style
	italic     lipgloss.Style
	strike     lipgloss.Style
	heading    lipgloss.Style
	subheading lipgloss.Style
	muted      lipgloss.Style
	codeSpan   lipgloss.Style
	link       lipgloss.Style
}

// New creates a Renderer for theme.
func New(theme chatmd.Theme) *Renderer {
	accent := ansiColor(theme.Accent)
	return &Renderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		styles: styles{
			bold:       lipgloss.NewStyle().Bold(true),
			italic:     lipgloss.NewStyle().Italic(true),
			strike:     lipgloss.NewStyle().Strikethrough(true),
			heading:    lipgloss.NewStyle().Foreground(accent).Bold(true).Underline(true),
			subheading: lipgloss.NewStyle().Foreground(accent).Bold(true),
			muted:      lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
			codeSpan:   lipgloss.NewStyle().Foreground(ansiColor(theme.Code)).Bold(true),
			link:       lipgloss.NewStyle().Underline(true),
		},
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

// Render returns source as styled terminal text. Paragraphs, list items
// and quotes are word-wrapped to width; blocks are separated by a blank
// line. A width of zero or less means 80.
func (r *Renderer) Render(source string, width int) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	src := []byte(source)
	d := &doc{styles: &r.styles, src: src}
	root := r.md.Parser().Parse(text.NewReader(src))
	return strings.TrimRight(d.blocks(root, width), "\n")
}
