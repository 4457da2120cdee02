package bubbletea

import (
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/chatmd"
	"github.com/fwojciec/chatmd/render"
	"github.com/mattn/go-runewidth"
)

var _ Collapsible = (*AssistantBlock)(nil)

// ReasoningHeader labels the collapsible reasoning section.
const ReasoningHeader = "Thinking Process"

// AssistantBlock renders one assistant message: an optional collapsible
// reasoning section followed by the answer. The raw buffer is the only
// state besides the reveal state; everything shown is re-derived from it on
// each update.
type AssistantBlock struct {
	buf      strings.Builder
	live     bool
	markers  chatmd.Markers
	parsed   chatmd.ParsedContent
	reveal   chatmd.RevealState
	renderer *render.Renderer
	styles   Styles
	logger   *slog.Logger
}

// NewAssistantBlock creates an empty, non-live block.
func NewAssistantBlock(r *render.Renderer, styles Styles, markers chatmd.Markers, logger *slog.Logger) *AssistantBlock {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := &AssistantBlock{
		markers:  markers,
		reveal:   chatmd.NewRevealState(),
		renderer: r,
		styles:   styles,
		logger:   logger,
	}
	b.reparse()
	return b
}

// Append adds a chunk of raw model output.
func (b *AssistantBlock) Append(delta string) {
	b.buf.WriteString(delta)
	b.reparse()
}

// SetLive marks whether more chunks are expected. A live block shows the
// cursor at its live edge.
func (b *AssistantBlock) SetLive(live bool) {
	if b.live == live {
		return
	}
	b.live = live
	b.reparse()
}

// Live reports whether the block is still receiving chunks.
func (b *AssistantBlock) Live() bool { return b.live }

// Content returns the raw buffer received so far.
func (b *AssistantBlock) Content() string { return b.buf.String() }

// Parsed returns the current derived view of the buffer.
func (b *AssistantBlock) Parsed() chatmd.ParsedContent { return b.parsed }

// Reveal returns the reasoning reveal state.
func (b *AssistantBlock) Reveal() chatmd.RevealState { return b.reveal }

// CanToggle reports whether the block has a reasoning section to toggle.
// A closed section with no content has nothing to reveal.
func (b *AssistantBlock) CanToggle() bool {
	return b.parsed.State == chatmd.ReasoningOpen || len(b.parsed.Reasoning) > 0
}

func (b *AssistantBlock) reparse() {
	text := b.buf.String()
	if b.live {
		text += chatmd.Sentinel
	}
	b.parsed = b.markers.Parse(text)

	prev := b.reveal
	b.reveal = b.reveal.Observe(b.parsed.State)
	if !prev.HasAutoCollapsed && b.reveal.HasAutoCollapsed {
		b.logger.Debug("reasoning auto-collapsed", "bytes", b.buf.Len())
	}
}

func (b *AssistantBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if _, ok := msg.(ToggleMsg); ok && b.CanToggle() {
		b.reveal = b.reveal.Toggle()
		b.logger.Debug("reasoning toggled", "phase", b.reveal.Phase().String())
	}
	return b, nil
}

func (b *AssistantBlock) View(width int) string {
	var parts []string
	if b.CanToggle() {
		parts = append(parts, b.header(width))
		if b.reveal.Expanded {
			if body := b.reasoningView(width); body != "" {
				parts = append(parts, body)
			}
		}
	}
	if len(b.parsed.Answer) > 0 {
		if answer := b.renderer.Segments(b.parsed.Answer, width); answer != "" {
			parts = append(parts, answer)
		}
	}
	return strings.Join(parts, "\n")
}

func (b *AssistantBlock) header(width int) string {
	indicator := "▶"
	if b.reveal.Expanded {
		indicator = "▼"
	}
	label := indicator + " " + ReasoningHeader
	if b.parsed.State == chatmd.ReasoningOpen {
		label += "…"
	}
	return b.styles.Reasoning.Render(runewidth.Truncate(label, width, "…"))
}

// reasoningView renders the reasoning segments indented behind a rule.
func (b *AssistantBlock) reasoningView(width int) string {
	inner := width - 2
	if inner < 1 {
		inner = 1
	}
	body := b.renderer.Segments(b.parsed.Reasoning, inner)
	if body == "" {
		return ""
	}
	bar := b.styles.Rule.Render("┃") + " "
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = bar + line
	}
	return strings.Join(lines, "\n")
}
