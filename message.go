package chatmd

import "time"

// Message is one turn of a chat. Content holds the raw text exactly as it
// was received, reasoning markers included; it is parsed on every render.
type Message struct {
	ID        string
	Role      Role
	Content   string
	CreatedAt time.Time
}

// Chat is a conversation as kept by a ChatStore.
type Chat struct {
	ID        string
	Name      string
	Model     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Messages  []Message
}

// LastAssistant returns the index of the last assistant message, or -1.
func (c Chat) LastAssistant() int {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleAssistant {
			return i
		}
	}
	return -1
}
