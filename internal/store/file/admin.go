package file

import (
	"context"
	"sync"
	"time"

	"noviqueen/internal/domain"
	"noviqueen/internal/store"
)

// admin.json holds a single credential object, the original layout.
// domain.Admin hides its password from JSON, so the file backend keeps
// its own record type that persists the hash.
type adminRecord struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

type adminStore struct {
	mu   sync.Mutex
	path string
}

func (s *adminStore) load() (*adminRecord, error) {
	record := &adminRecord{}
	if err := readJSON(s.path, record); err != nil {
		return nil, err
	}
	if record.Username == "" {
		return nil, nil
	}
	return record, nil
}

// GetByUsername retrieves the credential if the username matches.
func (s *adminStore) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.load()
	if err != nil {
		return nil, err
	}
	if record == nil || record.Username != username {
		return nil, store.ErrNotFound
	}
	return &domain.Admin{
		ID:        record.ID,
		Username:  record.Username,
		Password:  record.Password,
		CreatedAt: record.CreatedAt,
	}, nil
}

// Create writes the credential file. A second credential for the same
// username is ErrDuplicate; the file backend holds at most one row.
func (s *adminStore) Create(ctx context.Context, admin *domain.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load()
	if err != nil {
		return err
	}
	if existing != nil && existing.Username == admin.Username {
		return store.ErrDuplicate
	}

	admin.ID = 1
	admin.CreatedAt = time.Now().UTC()
	return writeJSON(s.path, adminRecord{
		ID:        admin.ID,
		Username:  admin.Username,
		Password:  admin.Password,
		CreatedAt: admin.CreatedAt,
	})
}

// UpdatePassword replaces the stored hash for the username.
func (s *adminStore) UpdatePassword(ctx context.Context, username string, hashedPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.load()
	if err != nil {
		return err
	}
	if record == nil || record.Username != username {
		return store.ErrNotFound
	}

	record.Password = hashedPassword
	return writeJSON(s.path, record)
}
