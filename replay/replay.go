// Package replay plays recorded model output back as a chatmd.Stream at a
// controlled pace, so the streaming pipeline can be exercised without a
// model.
package replay

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/chatmd"
	"golang.org/x/time/rate"
)

// Default pacing: four runes per chunk, sixty chunks per second.
const (
	DefaultChunk = 4
	DefaultRate  = 60.0
)

// Option configures a Stream.
type Option func(*Stream)

// WithRate sets the number of chunks delivered per second. A rate of zero
// or less disables pacing.
func WithRate(perSecond float64) Option {
	return func(s *Stream) {
		limit := rate.Limit(perSecond)
		if perSecond <= 0 {
			limit = rate.Inf
		}
		s.limiter = rate.NewLimiter(limit, 1)
	}
}

// WithChunk sets how many runes a text recording yields per delta. Values
// below one are treated as one.
func WithChunk(runes int) Option {
	return func(s *Stream) {
		s.chunk = max(runes, 1)
	}
}

// Stream paces deltas from a source. It implements chatmd.Stream.
type Stream struct {
	ctx     context.Context
	next    func() (string, error)
	closer  io.Closer
	limiter *rate.Limiter
	chunk   int
	state   chatmd.StreamState
	err     error
}

// Interface compliance check.
var _ chatmd.Stream = (*Stream)(nil)

func newStream(ctx context.Context, opts []Option) *Stream {
	s := &Stream{
		ctx:     ctx,
		limiter: rate.NewLimiter(rate.Limit(DefaultRate), 1),
		chunk:   DefaultChunk,
		state:   chatmd.StreamStateNew,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewText returns a Stream that replays the raw text in r in chunks of
// runes. Invalid UTF-8 bytes are passed through one at a time.
func NewText(ctx context.Context, r io.ReadCloser, opts ...Option) *Stream {
	s := newStream(ctx, opts)
	s.closer = r
	br := bufio.NewReader(r)
	s.next = func() (string, error) {
		return readRunes(br, s.chunk)
	}
	return s
}

// Wrap paces the deltas of an existing stream. Closing the returned stream
// closes inner.
func Wrap(ctx context.Context, inner chatmd.Stream, opts ...Option) *Stream {
	s := newStream(ctx, opts)
	s.closer = inner
	s.next = func() (string, error) {
		for {
			evt, err := inner.Next()
			if err != nil {
				return "", err
			}
			if d, ok := evt.(chatmd.EventTextDelta); ok && d.Delta != "" {
				return d.Delta, nil
			}
		}
	}
	return s
}

// Next waits for the pacer and returns the next delta. It returns io.EOF
// once the recording is exhausted and the context error once cancelled.
func (s *Stream) Next() (chatmd.Event, error) {
	switch s.state {
	case chatmd.StreamStateComplete:
		return nil, io.EOF
	case chatmd.StreamStateError:
		return nil, s.err
	case chatmd.StreamStateClosed:
		return nil, fmt.Errorf("replay: %w", chatmd.ErrStreamClosed)
	}

	if err := s.limiter.Wait(s.ctx); err != nil {
		if ctxErr := s.ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, s.fail(err)
	}

	delta, err := s.next()
	if errors.Is(err, io.EOF) && delta == "" {
		s.state = chatmd.StreamStateComplete
		return nil, io.EOF
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, s.fail(fmt.Errorf("replay: %w", err))
	}
	s.state = chatmd.StreamStateStreaming
	return chatmd.EventTextDelta{Delta: delta}, nil
}

// State returns the current stream state.
func (s *Stream) State() chatmd.StreamState {
	return s.state
}

// Close releases the recording. Deltas already delivered stay final.
func (s *Stream) Close() error {
	if s.state.Live() {
		s.state = chatmd.StreamStateClosed
	}
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *Stream) fail(err error) error {
	s.state = chatmd.StreamStateError
	s.err = err
	return err
}

// readRunes reads up to n runes. A short final chunk is returned with a nil
// error; io.EOF is returned only when nothing was read.
func readRunes(br *bufio.Reader, n int) (string, error) {
	var b strings.Builder
	for range n {
		r, size, err := br.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) && b.Len() > 0 {
				return b.String(), nil
			}
			return b.String(), err
		}
		if r == utf8.RuneError && size == 1 {
			if err := br.UnreadRune(); err != nil {
				return b.String(), err
			}
			c, err := br.ReadByte()
			if err != nil {
				return b.String(), err
			}
			b.WriteByte(c)
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}
