// Package anthropic decodes recorded Anthropic Messages API server-sent
// event streams into chatmd streams. Reasoning ("thinking") blocks are
// re-wrapped in reasoning markers so the recording replays exactly like a
// model that emits inline reasoning tags.
//
// The decoder processes one SSE event per step using a state-machine
// approach inspired by Rob Pike's lexer talk.
package anthropic

// SSE event payloads. Only the fields the decoder reads are declared.

type sseContentBlockStart struct {
	Type         string          `json:"type"`
	Index        int             `json:"index"`
	ContentBlock sseContentBlock `json:"content_block"`
}

type sseContentBlock struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Thinking string `json:"thinking,omitempty"`
}

type sseContentBlockDelta struct {
	Type  string   `json:"type"`
	Index int      `json:"index"`
	Delta sseDelta `json:"delta"`
}

type sseDelta struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Thinking string `json:"thinking,omitempty"`
}

type sseContentBlockStop struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
}

type sseError struct {
	Type  string         `json:"type"`
	Error sseErrorDetail `json:"error"`
}

type sseErrorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
