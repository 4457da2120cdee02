package chatmd

import "fmt"

// Validate checks the constraints every stored chat must satisfy.
func (c Chat) Validate() error {
	for i, m := range c.Messages {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
	}
	return nil
}

// Validate checks that a message has a known role.
func (m Message) Validate() error {
	switch m.Role {
	case RoleUser, RoleAssistant:
		return nil
	case "":
		return fmt.Errorf("role is required: %w", ErrValidation)
	default:
		return fmt.Errorf("unknown role %q: %w", m.Role, ErrValidation)
	}
}
