// Package store defines the Record Store contract: durable CRUD over the
// four entity kinds (products, messages, subscribers, admin credential)
// with three interchangeable backends (file, sqlite, postgres). Backends
// normalize their native representations at this boundary, so callers
// never see 0/1 booleans or driver-specific errors.
package store

import (
	"context"
	"errors"

	"noviqueen/internal/domain"
)

var (
	// ErrNotFound is returned when the requested id (or key) is absent.
	// All backends report it, including Delete on a missing row.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a uniqueness invariant (admin
	// username, subscriber email) would be violated.
	ErrDuplicate = errors.New("record already exists")

	// ErrUnavailable is returned when the backend itself cannot be
	// reached. Writes are never retried.
	ErrUnavailable = errors.New("store unavailable")
)

// ProductStore provides product persistence. Listings are ordered
// newest-first by creation time.
type ProductStore interface {
	GetAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetFeatured(ctx context.Context) ([]domain.Product, error)
	GetByCategory(ctx context.Context, category string) ([]domain.Product, error)
	// Create assigns the id and both timestamps on the given product.
	Create(ctx context.Context, product *domain.Product) error
	// Update rewrites the row identified by product.ID and bumps
	// UpdatedAt. Returns ErrNotFound if the id is absent.
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

// MessageStore provides contact-message persistence.
type MessageStore interface {
	GetAll(ctx context.Context) ([]domain.Message, error)
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	// Create assigns the id and creation timestamp; an empty status
	// defaults to unread.
	Create(ctx context.Context, message *domain.Message) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

// SubscriberStore provides newsletter-subscriber persistence. Email is
// unique; Create returns ErrDuplicate for a second signup.
type SubscriberStore interface {
	GetAll(ctx context.Context) ([]domain.Subscriber, error)
	GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error)
	Create(ctx context.Context, subscriber *domain.Subscriber) error
	UpdateStatus(ctx context.Context, email string, status string) error
	Delete(ctx context.Context, id int64) error
}

// AdminStore provides credential persistence. At most one row per
// username; the password column holds a bcrypt hash.
type AdminStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	Create(ctx context.Context, admin *domain.Admin) error
	UpdatePassword(ctx context.Context, username string, hashedPassword string) error
}

// Store aggregates the per-entity stores behind one backend connection.
type Store interface {
	Products() ProductStore
	Messages() MessageStore
	Subscribers() SubscriberStore
	Admins() AdminStore
	Close() error
}
