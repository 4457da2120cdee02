package mock

import (
	"context"

	"github.com/fwojciec/chatmd"
)

// Interface compliance check.
var _ chatmd.ChatStore = (*ChatStore)(nil)

// ChatStore is a test double for chatmd.ChatStore.
// Set the function fields for the methods you need; unset fields panic.
type ChatStore struct {
	CreateChatFn    func(ctx context.Context, chat *chatmd.Chat) error
	FindChatFn      func(ctx context.Context, id string) (chatmd.Chat, error)
	ListChatsFn     func(ctx context.Context) ([]chatmd.Chat, error)
	DeleteChatFn    func(ctx context.Context, id string) error
	AppendMessageFn func(ctx context.Context, chatID string, msg *chatmd.Message) error
}

// CreateChat delegates to CreateChatFn.
func (s *ChatStore) CreateChat(ctx context.Context, chat *chatmd.Chat) error {
	return s.CreateChatFn(ctx, chat)
}

// FindChat delegates to FindChatFn.
func (s *ChatStore) FindChat(ctx context.Context, id string) (chatmd.Chat, error) {
	return s.FindChatFn(ctx, id)
}

// ListChats delegates to ListChatsFn.
func (s *ChatStore) ListChats(ctx context.Context) ([]chatmd.Chat, error) {
	return s.ListChatsFn(ctx)
}

// DeleteChat delegates to DeleteChatFn.
func (s *ChatStore) DeleteChat(ctx context.Context, id string) error {
	return s.DeleteChatFn(ctx, id)
}

// AppendMessage delegates to AppendMessageFn.
func (s *ChatStore) AppendMessage(ctx context.Context, chatID string, msg *chatmd.Message) error {
	return s.AppendMessageFn(ctx, chatID, msg)
}
