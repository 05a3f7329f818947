package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"noviqueen/internal/domain"
	"noviqueen/internal/store"
)

type messageStore struct {
	db *sql.DB
}

const messageColumns = "id, name, email, subject, message, status, created_at"

// GetAll retrieves all contact messages, newest first.
func (s *messageStore) GetAll(ctx context.Context) ([]domain.Message, error) {
	query := fmt.Sprintf("SELECT %s FROM messages ORDER BY created_at DESC, id DESC", messageColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", mapError(err))
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var message domain.Message
		err := rows.Scan(
			&message.ID,
			&message.Name,
			&message.Email,
			&message.Subject,
			&message.Message,
			&message.Status,
			&message.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", mapError(err))
		}
		messages = append(messages, message)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", mapError(err))
	}

	return messages, nil
}

// GetByID retrieves a message by id.
func (s *messageStore) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	query := fmt.Sprintf("SELECT %s FROM messages WHERE id = ?", messageColumns)

	message := &domain.Message{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&message.ID,
		&message.Name,
		&message.Email,
		&message.Subject,
		&message.Message,
		&message.Status,
		&message.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find message by id: %w", mapError(err))
	}

	return message, nil
}

// Create inserts a new message and assigns its id and creation time.
func (s *messageStore) Create(ctx context.Context, message *domain.Message) error {
	if message.Status == "" {
		message.Status = domain.MessageStatusUnread
	}
	message.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO messages (name, email, subject, message, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		message.Name,
		message.Email,
		message.Subject,
		message.Message,
		message.Status,
		message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", mapError(err))
	}

	message.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted id: %w", mapError(err))
	}

	return nil
}

// UpdateStatus transitions a message to the given status.
func (s *messageStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := s.db.ExecContext(ctx, "UPDATE messages SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("failed to update message status: %w", mapError(err))
	}

	return requireRowsAffected(result)
}

// Delete removes a message row. Returns ErrNotFound if the id is absent.
func (s *messageStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM messages WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", mapError(err))
	}

	return requireRowsAffected(result)
}
