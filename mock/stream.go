// Package mock provides test doubles for chatmd interfaces using function fields.
package mock

import (
	"io"
	"sync"

	"github.com/fwojciec/chatmd"
)

// Interface compliance check.
var _ chatmd.Stream = (*Stream)(nil)

// Stream is a test double for chatmd.Stream.
// Set the function fields for the methods you need. NextFn panics when nil
// to catch missing setup. CloseFn and StateFn are nil-safe (no-op and zero
// value) because test code commonly calls defer stream.Close() and these
// methods rarely need custom behavior.
type Stream struct {
	NextFn  func() (chatmd.Event, error)
	StateFn func() chatmd.StreamState
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (chatmd.Event, error) {
	return s.NextFn()
}

// State delegates to StateFn. Returns StreamStateNew when StateFn is nil.
func (s *Stream) State() chatmd.StreamState {
	if s.StateFn == nil {
		return chatmd.StreamStateNew
	}
	return s.StateFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// DeltaStream returns a Stream that yields one EventTextDelta per chunk and
// then io.EOF. It is safe for use from the goroutine that consumes it while
// tests read State.
func DeltaStream(chunks ...string) *Stream {
	var mu sync.Mutex
	state := chatmd.StreamStateNew
	i := 0
	return &Stream{
		NextFn: func() (chatmd.Event, error) {
			mu.Lock()
			defer mu.Unlock()
			if state == chatmd.StreamStateClosed {
				return nil, chatmd.ErrStreamClosed
			}
			if i >= len(chunks) {
				state = chatmd.StreamStateComplete
				return nil, io.EOF
			}
			state = chatmd.StreamStateStreaming
			evt := chatmd.EventTextDelta{Delta: chunks[i]}
			i++
			return evt, nil
		},
		StateFn: func() chatmd.StreamState {
			mu.Lock()
			defer mu.Unlock()
			return state
		},
		CloseFn: func() error {
			mu.Lock()
			defer mu.Unlock()
			if state.Live() {
				state = chatmd.StreamStateClosed
			}
			return nil
		},
	}
}
