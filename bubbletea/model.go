package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/chatmd"
	"github.com/fwojciec/chatmd/render"
)

var _ tea.Model = Model{}

// Config holds the Model's collaborators. Every field is optional.
type Config struct {
	// Chat is the history shown above the streamed answer.
	Chat *chatmd.Chat
	// Stream, when set, is opened on start and streamed into a new
	// assistant block.
	Stream  StreamFunc
	Markers chatmd.Markers
	Theme   chatmd.Theme
	// CodeStyle names the chroma style for code blocks.
	CodeStyle string
	Logger    *slog.Logger
}

// Model is the Bubble Tea model for the chat TUI.
type Model struct {
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	spinner  spinner.Model
	help     help.Model
	keys     KeyMap
	cfg      Config
	styles   Styles
	renderer *render.Renderer
	logger   *slog.Logger

	blocks     []MessageBlock
	blockFocus int // index of focused collapsible block (-1 = none)
	active     *AssistantBlock

	streaming bool
	cancel    context.CancelFunc
	eventCh   chan chatmd.Event
	doneCh    chan error
	err       error
	ready     bool
}

// New creates a new TUI Model from cfg.
func New(cfg Config) Model {
	if cfg.Theme == (chatmd.Theme{}) {
		cfg.Theme = chatmd.DefaultTheme()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var opts []render.Option
	if cfg.CodeStyle != "" {
		opts = append(opts, render.WithCodeStyle(cfg.CodeStyle))
	}
	styles := NewStyles(cfg.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Accent

	m := Model{
		spinner:    sp,
		help:       help.New(),
		keys:       DefaultKeyMap(),
		cfg:        cfg,
		styles:     styles,
		renderer:   render.New(cfg.Theme, opts...),
		logger:     logger,
		blockFocus: -1,
	}
	m = m.renderChat()
	return m.updateBlockFocus()
}

// Streaming returns whether a stream is currently being consumed.
func (m Model) Streaming() bool { return m.streaming }

// Err returns the last stream error, if any.
func (m Model) Err() error { return m.err }

// Answer returns the raw content of the streamed assistant message, or ""
// when nothing was streamed.
func (m Model) Answer() string {
	if m.active == nil {
		return ""
	}
	return m.active.Content()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.cfg.Stream == nil {
		return nil
	}
	return func() tea.Msg { return startStreamMsg{} }
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case startStreamMsg:
		return m.startStream()

	case StreamEventMsg:
		m = m.processEvent(msg.Event)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		if m.eventCh != nil {
			return m, listenForEvent(m.eventCh, m.doneCh)
		}
		return m, nil

	case StreamDoneMsg:
		return m.finishStream(msg.Err), nil

	case spinner.TickMsg:
		if !m.streaming {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	statusHeight := 1
	borderHeight := 1 // newline between viewport and status
	vpHeight := msg.Height - statusHeight - borderHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.help.Width = msg.Width
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.streaming && key.Matches(msg, m.keys.Stop):
		if m.cancel != nil {
			m.cancel()
		}
		return m, nil

	case !m.streaming && key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		if m.blockFocus >= 0 {
			block, cmd := m.blocks[m.blockFocus].Update(ToggleMsg{})
			m.blocks[m.blockFocus] = block
			m.Viewport.SetContent(m.renderContent())
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.FocusPrev):
		m = m.cycleFocusPrev()
		m.Viewport.SetContent(m.renderContent())
		return m, nil
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m Model) startStream() (tea.Model, tea.Cmd) {
	if m.streaming || m.cfg.Stream == nil {
		return m, nil
	}
	m.err = nil

	m.active = NewAssistantBlock(m.renderer, m.styles, m.cfg.Markers, m.logger)
	m.active.SetLive(true)
	m.blocks = append(m.blocks, m.active)
	m = m.updateBlockFocus()
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.eventCh = make(chan chatmd.Event, 256)
	m.doneCh = make(chan error, 1)
	m.streaming = true
	m.logger.Info("stream started")

	return m, tea.Batch(
		consumeStream(ctx, m.cfg.Stream, m.eventCh, m.doneCh),
		listenForEvent(m.eventCh, m.doneCh),
		m.spinner.Tick,
	)
}

func (m Model) finishStream(err error) Model {
	m.streaming = false
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = nil
	m.eventCh = nil
	m.doneCh = nil

	if m.active != nil {
		m.active.SetLive(false)
	}
	switch {
	case err == nil:
		m.logger.Info("stream complete", "bytes", len(m.Answer()))
	case errors.Is(err, context.Canceled):
		m.logger.Info("stream stopped", "bytes", len(m.Answer()))
	default:
		m.err = err
		m.blocks = append(m.blocks, NewErrorBlock(err, m.Answer() != "", m.styles))
		m.logger.Error("stream failed", "error", err)
	}
	m = m.updateBlockFocus()
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m
}

// renderChat creates blocks from the configured chat history.
func (m Model) renderChat() Model {
	if m.cfg.Chat == nil {
		return m
	}
	for _, msg := range m.cfg.Chat.Messages {
		switch msg.Role {
		case chatmd.RoleUser:
			m.blocks = append(m.blocks, NewUserMessageBlock(msg.Content, m.styles))
		case chatmd.RoleAssistant:
			block := NewAssistantBlock(m.renderer, m.styles, m.cfg.Markers, m.logger)
			block.Append(msg.Content)
			m.blocks = append(m.blocks, block)
		}
	}
	return m
}

func (m Model) renderContent() string {
	if len(m.blocks) == 0 {
		return ""
	}
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

// processEvent routes a streaming event to the active assistant block.
func (m Model) processEvent(evt chatmd.Event) Model {
	switch e := evt.(type) {
	case chatmd.EventTextDelta:
		if m.active == nil {
			return m
		}
		wasToggleable := m.active.CanToggle()
		m.active.Append(e.Delta)
		if !wasToggleable && m.active.CanToggle() {
			m = m.updateBlockFocus()
		}
	}
	return m
}

// updateBlockFocus scans backwards to find the last collapsible block.
// Only the focused block responds to Tab. ShiftTab cycles to the previous
// collapsible block.
func (m Model) updateBlockFocus() Model {
	m.blockFocus = -1
	for i := len(m.blocks) - 1; i >= 0; i-- {
		if isCollapsible(m.blocks[i]) {
			m.blockFocus = i
			return m
		}
	}
	return m
}

// cycleFocusPrev moves blockFocus to the previous collapsible block, wrapping around.
func (m Model) cycleFocusPrev() Model {
	if len(m.blocks) == 0 {
		return m
	}
	start := m.blockFocus - 1
	if start < 0 {
		start = len(m.blocks) - 1
	}
	for i := range len(m.blocks) {
		idx := (start - i + len(m.blocks)) % len(m.blocks)
		if isCollapsible(m.blocks[idx]) {
			m.blockFocus = idx
			return m
		}
	}
	m.blockFocus = -1
	return m
}

func isCollapsible(b MessageBlock) bool {
	c, ok := b.(Collapsible)
	return ok && c.CanToggle()
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.streaming {
		phase := "Answering"
		if m.active != nil && m.active.Parsed().State == chatmd.ReasoningOpen {
			phase = "Thinking"
		}
		return m.spinner.View() + m.styles.Muted.Render(phase+"... ctrl+c to stop")
	}
	return m.help.View(m.keys)
}

// consumeStream opens the stream and forwards its events until it ends,
// fails, or ctx is cancelled. Completion is reported on doneCh after
// eventCh is closed.
func consumeStream(ctx context.Context, open StreamFunc, eventCh chan<- chatmd.Event, doneCh chan<- error) tea.Cmd {
	return func() tea.Msg {
		err := pump(ctx, open, eventCh)
		close(eventCh)
		doneCh <- err
		return nil
	}
}

func pump(ctx context.Context, open StreamFunc, eventCh chan<- chatmd.Event) error {
	s, err := open(ctx)
	if err != nil {
		return fmt.Errorf("opening stream: %w", err)
	}
	defer s.Close()
	for {
		evt, err := s.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("reading stream: %w", err)
		}
		select {
		case eventCh <- evt:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// listenForEvent waits for the next event from the channel.
// When the channel closes, it reads the error from doneCh and returns StreamDoneMsg.
func listenForEvent(ch <-chan chatmd.Event, doneCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			err := <-doneCh
			return StreamDoneMsg{Err: err}
		}
		return StreamEventMsg{Event: evt}
	}
}
