package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"noviqueen/internal/domain"
	"noviqueen/internal/store"
)

type adminStore struct {
	db *sql.DB
}

// GetByUsername retrieves the credential row for a username.
func (s *adminStore) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	query := "SELECT id, username, password, created_at FROM admins WHERE username = ?"

	admin := &domain.Admin{}
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&admin.ID,
		&admin.Username,
		&admin.Password,
		&admin.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find admin by username: %w", mapError(err))
	}

	return admin, nil
}

// Create inserts a new credential row. A duplicate username surfaces as
// ErrDuplicate.
func (s *adminStore) Create(ctx context.Context, admin *domain.Admin) error {
	admin.CreatedAt = time.Now().UTC()

	query := "INSERT INTO admins (username, password, created_at) VALUES (?, ?, ?)"

	result, err := s.db.ExecContext(ctx, query, admin.Username, admin.Password, admin.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", mapError(err))
	}

	admin.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted id: %w", mapError(err))
	}

	return nil
}

// UpdatePassword replaces the stored hash for a username.
func (s *adminStore) UpdatePassword(ctx context.Context, username string, hashedPassword string) error {
	result, err := s.db.ExecContext(ctx, "UPDATE admins SET password = ? WHERE username = ?", hashedPassword, username)
	if err != nil {
		return fmt.Errorf("failed to update admin password: %w", mapError(err))
	}

	return requireRowsAffected(result)
}
