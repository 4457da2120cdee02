package chatmd_test

import (
	"testing"

	"github.com/fwojciec/chatmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_Validate(t *testing.T) {
	t.Parallel()

	t.Run("user and assistant are valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, chatmd.Message{Role: chatmd.RoleUser, Content: "hi"}.Validate())
		assert.NoError(t, chatmd.Message{Role: chatmd.RoleAssistant}.Validate())
	})

	t.Run("missing role", func(t *testing.T) {
		t.Parallel()
		err := chatmd.Message{Content: "hi"}.Validate()
		require.ErrorIs(t, err, chatmd.ErrValidation)
		assert.Contains(t, err.Error(), "role is required")
	})

	t.Run("unknown role", func(t *testing.T) {
		t.Parallel()
		err := chatmd.Message{Role: "system"}.Validate()
		require.ErrorIs(t, err, chatmd.ErrValidation)
		assert.Contains(t, err.Error(), `"system"`)
	})
}

func TestChat_Validate(t *testing.T) {
	t.Parallel()

	t.Run("empty chat is valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, chatmd.Chat{}.Validate())
	})

	t.Run("reports the offending message", func(t *testing.T) {
		t.Parallel()
		c := chatmd.Chat{Messages: []chatmd.Message{
			{Role: chatmd.RoleUser},
			{Role: "tool"},
		}}
		err := c.Validate()
		require.ErrorIs(t, err, chatmd.ErrValidation)
		assert.Contains(t, err.Error(), "message 1")
	})
}

func TestChat_LastAssistant(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -1, chatmd.Chat{}.LastAssistant())
	c := chatmd.Chat{Messages: []chatmd.Message{
		{Role: chatmd.RoleUser},
		{Role: chatmd.RoleAssistant},
		{Role: chatmd.RoleUser},
		{Role: chatmd.RoleAssistant},
		{Role: chatmd.RoleUser},
	}}
	assert.Equal(t, 3, c.LastAssistant())
}
