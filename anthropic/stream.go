package anthropic

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/chatmd"
)

// stream implements [chatmd.Stream] by parsing SSE events from a recording.
type stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	ctx     context.Context
	markers chatmd.Markers
	state   chatmd.StreamState
	blocks  map[int]string // block index -> block type
	err     error          // terminal error, if any
}

// Interface compliance check.
var _ chatmd.Stream = (*stream)(nil)

// NewStream returns a stream that decodes the SSE recording in body. Text
// deltas pass through; thinking deltas are framed by markers. The body is
// closed by Close.
func NewStream(ctx context.Context, body io.ReadCloser, markers chatmd.Markers) chatmd.Stream {
	if markers.Open == "" || markers.Close == "" {
		markers = chatmd.DefaultMarkers()
	}
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &stream{
		body:    body,
		scanner: scanner,
		ctx:     ctx,
		markers: markers,
		state:   chatmd.StreamStateNew,
		blocks:  make(map[int]string),
	}
}

// Next reads the next text delta from the recording.
// Returns io.EOF once message_stop is read.
func (s *stream) Next() (chatmd.Event, error) {
	switch s.state {
	case chatmd.StreamStateComplete:
		return nil, io.EOF
	case chatmd.StreamStateError:
		return nil, s.err
	case chatmd.StreamStateClosed:
		return nil, fmt.Errorf("anthropic: %w", chatmd.ErrStreamClosed)
	}

	for {
		if err := s.ctx.Err(); err != nil {
			s.terminate(err)
			return nil, s.err
		}

		eventType, data, err := s.readSSEEvent()
		if err != nil {
			s.terminate(err)
			return nil, s.err
		}

		s.state = chatmd.StreamStateStreaming

		delta, err := s.processEvent(eventType, data)
		if err != nil {
			s.terminate(err)
			return nil, s.err
		}

		// processEvent may set a terminal state (message_stop).
		if s.state == chatmd.StreamStateComplete {
			return nil, io.EOF
		}

		if delta != "" {
			return chatmd.EventTextDelta{Delta: delta}, nil
		}
		// Non-text event (ping, message_start, etc.) - keep reading.
	}
}

// State returns the current stream state.
func (s *stream) State() chatmd.StreamState {
	return s.state
}

// Close closes the underlying recording.
func (s *stream) Close() error {
	if s.state.Live() {
		s.state = chatmd.StreamStateClosed
	}
	return s.body.Close()
}

// terminate records a terminal error.
func (s *stream) terminate(err error) {
	s.state = chatmd.StreamStateError
	if errors.Is(err, io.EOF) {
		// A complete recording ends with message_stop before EOF.
		s.err = fmt.Errorf("anthropic: unexpected end of stream")
		return
	}
	s.err = err
}

// readSSEEvent reads lines until a complete SSE event is assembled.
// Returns the event type and the data payload.
func (s *stream) readSSEEvent() (string, string, error) {
	var eventType string
	var dataBuf strings.Builder

	for s.scanner.Scan() {
		line := s.scanner.Text()

		if line == "" {
			// Empty line signals end of event.
			if dataBuf.Len() > 0 {
				return eventType, dataBuf.String(), nil
			}
			continue
		}

		if strings.HasPrefix(line, "event: ") {
			eventType = strings.TrimPrefix(line, "event: ")
		} else if strings.HasPrefix(line, "data: ") {
			if dataBuf.Len() > 0 {
				dataBuf.WriteByte('\n')
			}
			dataBuf.WriteString(strings.TrimPrefix(line, "data: "))
		}
		// Ignore comments (lines starting with ':') and unknown fields.
	}

	if err := s.scanner.Err(); err != nil {
		return "", "", fmt.Errorf("anthropic: %w", err)
	}

	if dataBuf.Len() > 0 {
		return eventType, dataBuf.String(), nil
	}
	return "", "", io.EOF
}

// processEvent maps an SSE event to raw text. Returns "" for events that
// carry no text.
func (s *stream) processEvent(eventType, data string) (string, error) {
	switch eventType {
	case "content_block_start":
		return s.handleContentBlockStart(data)
	case "content_block_delta":
		return s.handleContentBlockDelta(data)
	case "content_block_stop":
		return s.handleContentBlockStop(data)
	case "message_stop":
		s.state = chatmd.StreamStateComplete
		return "", nil
	case "error":
		return "", s.handleError(data)
	default:
		// message_start, message_delta, ping and unknown types carry no text.
		return "", nil
	}
}

func (s *stream) handleContentBlockStart(data string) (string, error) {
	var evt sseContentBlockStart
	if err := json.Unmarshal([]byte(data), &evt); err != nil {
		return "", fmt.Errorf("anthropic: failed to parse content_block_start: %w", err)
	}
	s.blocks[evt.Index] = evt.ContentBlock.Type

	switch evt.ContentBlock.Type {
	case "thinking":
		return s.markers.Open + evt.ContentBlock.Thinking, nil
	case "text":
		return evt.ContentBlock.Text, nil
	default:
		return "", nil
	}
}

func (s *stream) handleContentBlockDelta(data string) (string, error) {
	var evt sseContentBlockDelta
	if err := json.Unmarshal([]byte(data), &evt); err != nil {
		return "", fmt.Errorf("anthropic: failed to parse content_block_delta: %w", err)
	}
	if _, ok := s.blocks[evt.Index]; !ok {
		return "", fmt.Errorf("anthropic: delta for unknown block index %d", evt.Index)
	}

	switch evt.Delta.Type {
	case "text_delta":
		return evt.Delta.Text, nil
	case "thinking_delta":
		return evt.Delta.Thinking, nil
	default:
		// signature_delta, input_json_delta: not displayed.
		return "", nil
	}
}

func (s *stream) handleContentBlockStop(data string) (string, error) {
	var evt sseContentBlockStop
	if err := json.Unmarshal([]byte(data), &evt); err != nil {
		return "", fmt.Errorf("anthropic: failed to parse content_block_stop: %w", err)
	}
	blockType, ok := s.blocks[evt.Index]
	if !ok {
		return "", fmt.Errorf("anthropic: stop for unknown block index %d", evt.Index)
	}
	if blockType == "thinking" {
		return s.markers.Close, nil
	}
	return "", nil
}

func (s *stream) handleError(data string) error {
	var evt sseError
	if err := json.Unmarshal([]byte(data), &evt); err != nil {
		return fmt.Errorf("anthropic: failed to parse error event: %w", err)
	}
	return fmt.Errorf("anthropic: %s: %s", evt.Error.Type, evt.Error.Message)
}
