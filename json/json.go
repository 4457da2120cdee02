// Package json persists chats as JSON files and dumps parsed content for
// inspection.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/chatmd"
)

// envelope is the v1 wire format for a persisted chat.
type envelope struct {
	Version   int          `json:"version"`
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Model     string       `json:"model,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Messages  []messageDTO `json:"messages"`
}

// messageDTO is the JSON representation of a Message. Content is stored raw,
// reasoning markers included.
type messageDTO struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// MarshalChat serializes a Chat to JSON in v1 envelope format.
func MarshalChat(c chatmd.Chat) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	env := envelope{
		Version:   1,
		ID:        c.ID,
		Name:      c.Name,
		Model:     c.Model,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Messages:  make([]messageDTO, len(c.Messages)),
	}
	for i, m := range c.Messages {
		env.Messages[i] = messageDTO{
			ID:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalChat deserializes a Chat from JSON in v1 envelope format.
func UnmarshalChat(data []byte) (chatmd.Chat, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return chatmd.Chat{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return chatmd.Chat{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	c := chatmd.Chat{
		ID:        env.ID,
		Name:      env.Name,
		Model:     env.Model,
		CreatedAt: env.CreatedAt,
		UpdatedAt: env.UpdatedAt,
		Messages:  make([]chatmd.Message, len(env.Messages)),
	}
	for i, dto := range env.Messages {
		c.Messages[i] = chatmd.Message{
			ID:        dto.ID,
			Role:      chatmd.Role(dto.Role),
			Content:   dto.Content,
			CreatedAt: dto.CreatedAt,
		}
	}
	if err := c.Validate(); err != nil {
		return chatmd.Chat{}, err
	}
	return c, nil
}

// Save writes a Chat to a JSON file, creating parent directories as needed.
// The file is replaced atomically.
func Save(path string, c chatmd.Chat) error {
	data, err := MarshalChat(c)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a Chat from a JSON file. A missing file yields
// chatmd.ErrNotFound.
func Load(path string) (chatmd.Chat, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return chatmd.Chat{}, fmt.Errorf("read file: %w", chatmd.ErrNotFound)
	}
	if err != nil {
		return chatmd.Chat{}, fmt.Errorf("read file: %w", err)
	}
	c, err := UnmarshalChat(data)
	if err != nil {
		return chatmd.Chat{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return c, nil
}
