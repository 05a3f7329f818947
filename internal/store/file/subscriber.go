package file

import (
	"context"
	"sort"
	"sync"
	"time"

	"noviqueen/internal/domain"
	"noviqueen/internal/store"
)

type subscriberStore struct {
	mu   sync.Mutex
	path string
}

func (s *subscriberStore) load() ([]domain.Subscriber, error) {
	subscribers := []domain.Subscriber{}
	if err := readJSON(s.path, &subscribers); err != nil {
		return nil, err
	}
	return subscribers, nil
}

// GetAll retrieves all subscribers, newest first.
func (s *subscriberStore) GetAll(ctx context.Context) ([]domain.Subscriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subscribers, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(subscribers, func(i, j int) bool {
		if !subscribers[i].SubscribedAt.Equal(subscribers[j].SubscribedAt) {
			return subscribers[i].SubscribedAt.After(subscribers[j].SubscribedAt)
		}
		return subscribers[i].ID > subscribers[j].ID
	})
	return subscribers, nil
}

// GetByEmail retrieves a subscriber by email.
func (s *subscriberStore) GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subscribers, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range subscribers {
		if subscribers[i].Email == email {
			subscriber := subscribers[i]
			return &subscriber, nil
		}
	}
	return nil, store.ErrNotFound
}

// Create appends a new subscriber; a duplicate email is ErrDuplicate.
func (s *subscriberStore) Create(ctx context.Context, subscriber *domain.Subscriber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subscribers, err := s.load()
	if err != nil {
		return err
	}

	for i := range subscribers {
		if subscribers[i].Email == subscriber.Email {
			return store.ErrDuplicate
		}
	}

	subscriber.ID = nextID(len(subscribers), func(i int) int64 { return subscribers[i].ID })
	if subscriber.Status == "" {
		subscriber.Status = domain.SubscriberStatusActive
	}
	subscriber.SubscribedAt = time.Now().UTC()

	subscribers = append(subscribers, *subscriber)
	return writeJSON(s.path, subscribers)
}

// UpdateStatus sets a subscriber's status by email.
func (s *subscriberStore) UpdateStatus(ctx context.Context, email string, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subscribers, err := s.load()
	if err != nil {
		return err
	}

	for i := range subscribers {
		if subscribers[i].Email == email {
			subscribers[i].Status = status
			return writeJSON(s.path, subscribers)
		}
	}
	return store.ErrNotFound
}

// Delete removes a subscriber. Returns ErrNotFound if the id is absent.
func (s *subscriberStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subscribers, err := s.load()
	if err != nil {
		return err
	}

	for i := range subscribers {
		if subscribers[i].ID == id {
			subscribers = append(subscribers[:i], subscribers[i+1:]...)
			return writeJSON(s.path, subscribers)
		}
	}
	return store.ErrNotFound
}
