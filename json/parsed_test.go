package json_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/chatmd"
	chatjson "github.com/fwojciec/chatmd/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalParsed(t *testing.T) {
	t.Parallel()

	p := chatmd.Parse("<think>plan</think>Code:\n```go\nx := 1")
	data, err := chatjson.MarshalParsed(p)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"state": "closed",
		"reasoning": [{"type": "prose", "text": "plan"}],
		"answer": [
			{"type": "prose", "text": "Code:"},
			{"type": "code", "text": "x := 1", "language": "go", "complete": false}
		]
	}`, string(data))
}

func TestMarshalParsed_CursorAndMath(t *testing.T) {
	t.Parallel()

	p := chatmd.ParsedContent{
		Answer: []chatmd.Segment{
			chatmd.MathSegment{Text: "x^2", Display: true},
			chatmd.CursorSegment{},
		},
	}
	data, err := chatjson.MarshalParsed(p)
	require.NoError(t, err)

	var got struct {
		State  string           `json:"state"`
		Answer []map[string]any `json:"answer"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "none", got.State)
	require.Len(t, got.Answer, 2)
	assert.Equal(t, "math", got.Answer[0]["type"])
	assert.Equal(t, true, got.Answer[0]["display"])
	assert.Equal(t, map[string]any{"type": "cursor"}, got.Answer[1])
}
