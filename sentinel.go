package chatmd

import "strings"

// Sentinel is the placeholder glyph an in-progress stream carries at its
// live edge. It renders as a blinking cursor, never as content.
const Sentinel = "▍"

// quotedSentinel is the sentinel wrapped in inline code emphasis.
const quotedSentinel = "`" + Sentinel + "`"

// StripSentinel removes every sentinel from s. It is used for boundary
// decisions only; buffers are never rewritten.
func StripSentinel(s string) string {
	return strings.ReplaceAll(s, Sentinel, "")
}

// Normalize adjusts a segment so the sentinel presents as a cursor.
// A code or prose segment consisting solely of the sentinel becomes a
// CursorSegment; a sentinel wrapped in inline code emphasis is unwrapped.
func Normalize(seg Segment) Segment {
	switch s := seg.(type) {
	case CodeSegment:
		if strings.TrimSpace(s.Body) == Sentinel {
			return CursorSegment{}
		}
		s.Body = strings.ReplaceAll(s.Body, quotedSentinel, Sentinel)
		return s
	case ProseSegment:
		if strings.TrimSpace(s.Text) == Sentinel {
			return CursorSegment{}
		}
		s.Text = strings.ReplaceAll(s.Text, quotedSentinel, Sentinel)
		return s
	default:
		return seg
	}
}

// NormalizeAll applies Normalize to each segment, returning a new slice.
func NormalizeAll(segs []Segment) []Segment {
	if segs == nil {
		return nil
	}
	out := make([]Segment, len(segs))
	for i, s := range segs {
		out[i] = Normalize(s)
	}
	return out
}
