// Package file implements the Record Store over plain JSON files in a
// data directory (products.json, messages.json, subscribers.json,
// admin.json). Every write rewrites the whole file, so writes are
// serialized under a mutex and committed with a temp-file rename. The
// layout is shared with `catalogctl import`, which reads the same files
// when migrating to a SQL backend.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"noviqueen/internal/store"
)

const (
	productsFile    = "products.json"
	messagesFile    = "messages.json"
	subscribersFile = "subscribers.json"
	adminFile       = "admin.json"
)

// Store aggregates the per-entity stores over one data directory.
type Store struct {
	products    *productStore
	messages    *messageStore
	subscribers *subscriberStore
	admins      *adminStore
}

// Open prepares a file store rooted at dir, creating it if necessary.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	products := &productStore{path: filepath.Join(dir, productsFile)}
	messages := &messageStore{path: filepath.Join(dir, messagesFile)}
	subscribers := &subscriberStore{path: filepath.Join(dir, subscribersFile)}
	admins := &adminStore{path: filepath.Join(dir, adminFile)}

	return &Store{
		products:    products,
		messages:    messages,
		subscribers: subscribers,
		admins:      admins,
	}, nil
}

func (s *Store) Products() store.ProductStore       { return s.products }
func (s *Store) Messages() store.MessageStore       { return s.messages }
func (s *Store) Subscribers() store.SubscriberStore { return s.subscribers }
func (s *Store) Admins() store.AdminStore           { return s.admins }

// Close is a no-op; files are closed after every operation.
func (s *Store) Close() error { return nil }

// readJSON loads the file at path into v. A missing file leaves v at its
// zero value.
func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSON durably replaces the file at path with the encoding of v.
// The temp-file rename keeps a concurrent reader from ever observing a
// partially written file.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to commit %s: %w", filepath.Base(path), err)
	}
	return nil
}
