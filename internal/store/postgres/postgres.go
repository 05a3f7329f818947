// Package postgres implements the Record Store over a hosted PostgreSQL
// instance using the pgx stdlib driver. Schema is managed by goose
// migrations (see migrations/).
package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"noviqueen/internal/store"

	"github.com/jackc/pgx/v5/pgconn"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Store aggregates the per-entity stores over one connection pool.
type Store struct {
	db          *sql.DB
	products    *productStore
	messages    *messageStore
	subscribers *subscriberStore
	admins      *adminStore
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:          db,
		products:    &productStore{db: db},
		messages:    &messageStore{db: db},
		subscribers: &subscriberStore{db: db},
		admins:      &adminStore{db: db},
	}
}

func (s *Store) Products() store.ProductStore       { return s.products }
func (s *Store) Messages() store.MessageStore       { return s.messages }
func (s *Store) Subscribers() store.SubscriberStore { return s.subscribers }
func (s *Store) Admins() store.AdminStore           { return s.admins }

func (s *Store) Close() error { return s.db.Close() }

// uniqueViolation is the SQLSTATE for a unique-constraint failure.
// Class 08 covers connection exceptions.
const (
	uniqueViolation      = "23505"
	connectionExceptions = "08"
)

// mapError normalizes driver errors to the store taxonomy. Connection
// loss mid-request surfaces as ErrUnavailable, same as a failed open.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == uniqueViolation:
			return store.ErrDuplicate
		case strings.HasPrefix(pgErr.Code, connectionExceptions):
			return store.ErrUnavailable
		}
		return err
	}
	if errors.Is(err, driver.ErrBadConn) {
		return store.ErrUnavailable
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return store.ErrUnavailable
	}
	return err
}
