package chatmd

import "context"

// ChatStore is the backend data store collaborator. Implementations assign
// IDs and timestamps on create and return ErrNotFound for unknown IDs.
type ChatStore interface {
	CreateChat(ctx context.Context, chat *Chat) error
	FindChat(ctx context.Context, id string) (Chat, error)
	ListChats(ctx context.Context) ([]Chat, error)
	DeleteChat(ctx context.Context, id string) error
	AppendMessage(ctx context.Context, chatID string, msg *Message) error
}
