package chatmd

// StreamState indicates the current state of a Stream.
type StreamState int

const (
	StreamStateNew       StreamState = iota // Before Next() is ever called.
	StreamStateStreaming                    // Mid-stream, receiving deltas.
	StreamStateComplete                     // Next() returned io.EOF.
	StreamStateError                        // Next() returned non-EOF error.
	StreamStateClosed                       // Close() called before terminal state.
)

func (s StreamState) String() string {
	switch s {
	case StreamStateNew:
		return "new"
	case StreamStateStreaming:
		return "streaming"
	case StreamStateComplete:
		return "complete"
	case StreamStateError:
		return "error"
	case StreamStateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Live reports whether more deltas may still arrive.
func (s StreamState) Live() bool {
	return s == StreamStateNew || s == StreamStateStreaming
}

// Stream is the upstream message-stream collaborator. It uses a pull-based
// iterator pattern; cancellation flows through the context the stream was
// created with.
//
// Next returns io.EOF once the response is complete. After an abort the
// stream stops delivering and whatever was received so far is final: there
// is no forced closure of open markers or fences.
type Stream interface {
	Next() (Event, error)
	State() StreamState
	Close() error
}
