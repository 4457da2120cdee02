package chatmd_test

import (
	"testing"

	"github.com/fwojciec/chatmd"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTheme(t *testing.T) {
	t.Parallel()

	theme := chatmd.DefaultTheme()

	assert.Equal(t, 4, theme.UserMsg)
	assert.Equal(t, 8, theme.Reasoning)
	assert.Equal(t, 8, theme.Code)
	assert.Equal(t, 6, theme.Math)
	assert.Equal(t, 7, theme.Cursor)
	assert.Equal(t, 1, theme.Error)
	assert.Equal(t, 8, theme.Muted)
	assert.Equal(t, 0, theme.CodeBg)
	assert.Equal(t, 5, theme.Accent)
}
