package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"noviqueen/internal/domain"
	"noviqueen/internal/store"
)

type subscriberStore struct {
	db *sql.DB
}

const subscriberColumns = "id, email, status, subscribed_at"

// GetAll retrieves all subscribers, newest first.
func (s *subscriberStore) GetAll(ctx context.Context) ([]domain.Subscriber, error) {
	query := fmt.Sprintf("SELECT %s FROM subscribers ORDER BY subscribed_at DESC, id DESC", subscriberColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", mapError(err))
	}
	defer rows.Close()

	subscribers := []domain.Subscriber{}
	for rows.Next() {
		var subscriber domain.Subscriber
		err := rows.Scan(
			&subscriber.ID,
			&subscriber.Email,
			&subscriber.Status,
			&subscriber.SubscribedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", mapError(err))
		}
		subscribers = append(subscribers, subscriber)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscribers: %w", mapError(err))
	}

	return subscribers, nil
}

// GetByEmail retrieves a subscriber by email.
func (s *subscriberStore) GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	query := fmt.Sprintf("SELECT %s FROM subscribers WHERE email = $1", subscriberColumns)

	subscriber := &domain.Subscriber{}
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&subscriber.ID,
		&subscriber.Email,
		&subscriber.Status,
		&subscriber.SubscribedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find subscriber by email: %w", mapError(err))
	}

	return subscriber, nil
}

// Create inserts a new subscriber. A duplicate email violates the unique
// constraint and surfaces as ErrDuplicate.
func (s *subscriberStore) Create(ctx context.Context, subscriber *domain.Subscriber) error {
	if subscriber.Status == "" {
		subscriber.Status = domain.SubscriberStatusActive
	}
	subscriber.SubscribedAt = time.Now().UTC()

	query := `
		INSERT INTO subscribers (email, status, subscribed_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		subscriber.Email,
		subscriber.Status,
		subscriber.SubscribedAt,
	).Scan(&subscriber.ID)
	if err != nil {
		return fmt.Errorf("failed to create subscriber: %w", mapError(err))
	}

	return nil
}

// UpdateStatus sets a subscriber's status by email.
func (s *subscriberStore) UpdateStatus(ctx context.Context, email string, status string) error {
	result, err := s.db.ExecContext(ctx, "UPDATE subscribers SET status = $2 WHERE email = $1", email, status)
	if err != nil {
		return fmt.Errorf("failed to update subscriber status: %w", mapError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", mapError(err))
	}
	if rowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}

// Delete removes a subscriber row. Returns ErrNotFound if the id is absent.
func (s *subscriberStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM subscribers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete subscriber: %w", mapError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", mapError(err))
	}
	if rowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}
