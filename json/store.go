package json

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/chatmd"
	"github.com/google/uuid"
)

// Interface compliance check.
var _ chatmd.ChatStore = (*Store)(nil)

// Store is a chatmd.ChatStore keeping one JSON file per chat in a
// directory. It is safe for concurrent use within one process.
type Store struct {
	dir string
	mu  sync.Mutex

	// Now and NewID are replaceable for tests.
	Now   func() time.Time
	NewID func() string
}

// NewStore returns a Store rooted at dir. The directory is created on the
// first write.
func NewStore(dir string) *Store {
	return &Store{
		dir:   dir,
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(id string) (string, error) {
	if err := uuid.Validate(id); err != nil {
		return "", fmt.Errorf("chat %q: %w", id, chatmd.ErrNotFound)
	}
	return filepath.Join(s.dir, id+".json"), nil
}

// CreateChat assigns the chat an ID and timestamps and writes it. Messages
// without IDs or timestamps get them too.
func (s *Store) CreateChat(ctx context.Context, chat *chatmd.Chat) error {
	if err := chat.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now().UTC()
	chat.ID = s.NewID()
	chat.CreatedAt = now
	chat.UpdatedAt = now
	for i := range chat.Messages {
		s.stamp(&chat.Messages[i], now)
	}
	p, err := s.path(chat.ID)
	if err != nil {
		return err
	}
	if err := Save(p, *chat); err != nil {
		return fmt.Errorf("create chat: %w", err)
	}
	return nil
}

// FindChat loads the chat with id.
func (s *Store) FindChat(ctx context.Context, id string) (chatmd.Chat, error) {
	p, err := s.path(id)
	if err != nil {
		return chatmd.Chat{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := Load(p)
	if err != nil {
		return chatmd.Chat{}, fmt.Errorf("find chat %q: %w", id, err)
	}
	return c, nil
}

// ListChats returns every stored chat, most recently updated first. A
// missing store directory is an empty store.
func (s *Store) ListChats(ctx context.Context) ([]chatmd.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	var chats []chatmd.Chat
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := Load(filepath.Join(s.dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("list chats: %w", err)
		}
		chats = append(chats, c)
	}
	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].UpdatedAt.After(chats[j].UpdatedAt)
	})
	return chats, nil
}

// DeleteChat removes the chat with id.
func (s *Store) DeleteChat(ctx context.Context, id string) error {
	p, err := s.path(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("delete chat %q: %w", id, chatmd.ErrNotFound)
		}
		return fmt.Errorf("delete chat %q: %w", id, err)
	}
	return nil
}

// AppendMessage adds msg to the chat with id, assigning the message an ID
// and timestamp when missing.
func (s *Store) AppendMessage(ctx context.Context, chatID string, msg *chatmd.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	p, err := s.path(chatID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := Load(p)
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	now := s.Now().UTC()
	s.stamp(msg, now)
	c.Messages = append(c.Messages, *msg)
	c.UpdatedAt = now
	if err := Save(p, c); err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

func (s *Store) stamp(m *chatmd.Message, now time.Time) {
	if m.ID == "" {
		m.ID = s.NewID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
}
