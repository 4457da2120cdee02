package chatmd

// ParsedContent is the derived view of one buffer snapshot. It is rebuilt
// from scratch on every update and never persisted.
type ParsedContent struct {
	Reasoning []Segment
	Answer    []Segment
	State     ReasoningState
}

// Parse runs the full pipeline over buffer with the default markers.
func Parse(buffer string) ParsedContent {
	return DefaultMarkers().Parse(buffer)
}

// Parse splits buffer into reasoning and answer, decomposes each half and
// normalizes the cursor sentinel. The caller must only ever grow buffer
// between calls; shrinking or rewriting history is not detected.
func (m Markers) Parse(buffer string) ParsedContent {
	r := m.Split(buffer)
	return ParsedContent{
		Reasoning: NormalizeAll(Decompose(r.Reasoning)),
		Answer:    NormalizeAll(Decompose(r.Answer)),
		State:     r.State,
	}
}
