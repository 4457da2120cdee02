package json

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/chatmd"
)

// parsedDTO is the JSON representation of a ParsedContent.
type parsedDTO struct {
	State     string       `json:"state"`
	Reasoning []segmentDTO `json:"reasoning"`
	Answer    []segmentDTO `json:"answer"`
}

// segmentDTO is the JSON representation of a Segment with a type discriminator.
type segmentDTO struct {
	Type     string  `json:"type"`
	Text     *string `json:"text,omitempty"`
	Language *string `json:"language,omitempty"`
	Complete *bool   `json:"complete,omitempty"`
	Display  *bool   `json:"display,omitempty"`
}

// MarshalParsed serializes a ParsedContent for inspection. The output is
// not meant to be read back.
func MarshalParsed(p chatmd.ParsedContent) ([]byte, error) {
	reasoning, err := marshalSegments(p.Reasoning)
	if err != nil {
		return nil, fmt.Errorf("reasoning: %w", err)
	}
	answer, err := marshalSegments(p.Answer)
	if err != nil {
		return nil, fmt.Errorf("answer: %w", err)
	}
	return json.MarshalIndent(parsedDTO{
		State:     p.State.String(),
		Reasoning: reasoning,
		Answer:    answer,
	}, "", "  ")
}

func marshalSegments(segs []chatmd.Segment) ([]segmentDTO, error) {
	out := make([]segmentDTO, len(segs))
	for i, seg := range segs {
		switch s := seg.(type) {
		case chatmd.ProseSegment:
			out[i] = segmentDTO{Type: "prose", Text: &s.Text}
		case chatmd.MathSegment:
			out[i] = segmentDTO{Type: "math", Text: &s.Text, Display: &s.Display}
		case chatmd.CodeSegment:
			out[i] = segmentDTO{Type: "code", Text: &s.Body, Language: &s.Language, Complete: &s.Complete}
		case chatmd.CursorSegment:
			out[i] = segmentDTO{Type: "cursor"}
		default:
			return nil, fmt.Errorf("segment %d: unknown type %T", i, seg)
		}
	}
	return out, nil
}
