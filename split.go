package chatmd

import "strings"

// Wire contract with upstream model output. Changing any of these breaks
// compatibility with the models that emit them.
const (
	DefaultOpenMarker  = "<think>"
	DefaultCloseMarker = "</think>"
	Fence              = "```"
)

// ReasoningState classifies a buffer snapshot. Exactly one state holds for
// any snapshot.
type ReasoningState int

const (
	ReasoningNone   ReasoningState = iota // No open marker present.
	ReasoningOpen                         // Open marker seen, close not yet.
	ReasoningClosed                       // Open and close markers both seen.
)

func (s ReasoningState) String() string {
	switch s {
	case ReasoningNone:
		return "none"
	case ReasoningOpen:
		return "open"
	case ReasoningClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Markers delimits the reasoning segment. Zero-value fields fall back to the
// defaults.
type Markers struct {
	Open  string
	Close string
}

// DefaultMarkers returns the <think>...</think> markers.
func DefaultMarkers() Markers {
	return Markers{Open: DefaultOpenMarker, Close: DefaultCloseMarker}
}

func (m Markers) withDefaults() Markers {
	if m.Open == "" {
		m.Open = DefaultOpenMarker
	}
	if m.Close == "" {
		m.Close = DefaultCloseMarker
	}
	return m
}

// SplitResult is the outcome of splitting one buffer snapshot.
type SplitResult struct {
	Reasoning string
	Answer    string
	State     ReasoningState
}

// OpenNotClosed reports whether the reasoning segment is still streaming.
func (r SplitResult) OpenNotClosed() bool {
	return r.State == ReasoningOpen
}

// Split separates reasoning from answer text using the default markers.
func Split(buffer string) SplitResult {
	return DefaultMarkers().Split(buffer)
}

// Split separates reasoning from answer text. It is a pure function of the
// whole buffer and is meant to be re-run on every buffer growth: a marker
// split across chunks is plain text until its last byte arrives.
//
// Only the first open marker and the first close marker after it are
// honored. While the reasoning segment is open the answer is withheld.
func (m Markers) Split(buffer string) SplitResult {
	m = m.withDefaults()

	start := strings.Index(buffer, m.Open)
	if start < 0 {
		return SplitResult{Answer: buffer, State: ReasoningNone}
	}
	body := buffer[start+len(m.Open):]

	end := strings.Index(body, m.Close)
	if end < 0 {
		return SplitResult{Reasoning: body, State: ReasoningOpen}
	}
	return SplitResult{
		Reasoning: body[:end],
		Answer:    body[end+len(m.Close):],
		State:     ReasoningClosed,
	}
}
