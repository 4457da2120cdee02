package chatmd

// Event is a sealed interface representing a streaming event.
// Transport errors come from Next()'s error return, not from events.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventTextDelta carries the next chunk of raw model output. Chunk
// boundaries are arbitrary: a marker, fence or multi-byte glyph may be split
// across two deltas.
type EventTextDelta struct {
	Delta string
}

func (EventTextDelta) event() {}

// Interface compliance checks.
var _ Event = EventTextDelta{}
