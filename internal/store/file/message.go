package file

import (
	"context"
	"sort"
	"sync"
	"time"

	"noviqueen/internal/domain"
	"noviqueen/internal/store"
)

type messageStore struct {
	mu   sync.Mutex
	path string
}

func (s *messageStore) load() ([]domain.Message, error) {
	messages := []domain.Message{}
	if err := readJSON(s.path, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// GetAll retrieves all contact messages, newest first.
func (s *messageStore) GetAll(ctx context.Context) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(messages, func(i, j int) bool {
		if !messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].CreatedAt.After(messages[j].CreatedAt)
		}
		return messages[i].ID > messages[j].ID
	})
	return messages, nil
}

// GetByID retrieves a message by id.
func (s *messageStore) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range messages {
		if messages[i].ID == id {
			message := messages[i]
			return &message, nil
		}
	}
	return nil, store.ErrNotFound
}

// Create appends a new message, assigning max(id)+1 and the creation time.
func (s *messageStore) Create(ctx context.Context, message *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages, err := s.load()
	if err != nil {
		return err
	}

	message.ID = nextID(len(messages), func(i int) int64 { return messages[i].ID })
	if message.Status == "" {
		message.Status = domain.MessageStatusUnread
	}
	message.CreatedAt = time.Now().UTC()

	messages = append(messages, *message)
	return writeJSON(s.path, messages)
}

// UpdateStatus transitions a message to the given status.
func (s *messageStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages, err := s.load()
	if err != nil {
		return err
	}

	for i := range messages {
		if messages[i].ID == id {
			messages[i].Status = status
			return writeJSON(s.path, messages)
		}
	}
	return store.ErrNotFound
}

// Delete removes a message. Returns ErrNotFound if the id is absent.
func (s *messageStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages, err := s.load()
	if err != nil {
		return err
	}

	for i := range messages {
		if messages[i].ID == id {
			messages = append(messages[:i], messages[i+1:]...)
			return writeJSON(s.path, messages)
		}
	}
	return store.ErrNotFound
}
