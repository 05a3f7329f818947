package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"noviqueen/internal/domain"
	"noviqueen/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestProductCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Empty directory reads as an empty catalog, not an error.
	products, err := s.Products().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	product := &domain.Product{
		Name:        "Pearl Bag",
		Description: "Hand-beaded pearl clutch",
		Price:       49.99,
		Category:    "bags",
		InStock:     true,
	}
	require.NoError(t, s.Products().Create(ctx, product))
	assert.Equal(t, int64(1), product.ID)
	assert.False(t, product.CreatedAt.IsZero())
	assert.Equal(t, product.CreatedAt, product.UpdatedAt)

	got, err := s.Products().GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pearl Bag", got.Name)
	assert.True(t, got.InStock)

	got.Price = 59.99
	require.NoError(t, s.Products().Update(ctx, got))

	updated, err := s.Products().GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 59.99, updated.Price)
	assert.Equal(t, product.CreatedAt, updated.CreatedAt)

	require.NoError(t, s.Products().Delete(ctx, product.ID))

	_, err = s.Products().GetByID(ctx, product.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestProductListingsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	names := []string{"Coral Tote", "Amber Clutch", "Ivory Pouch"}
	for _, name := range names {
		require.NoError(t, s.Products().Create(ctx, &domain.Product{
			Name:     name,
			Price:    10,
			Category: "bags",
			InStock:  true,
		}))
	}

	products, err := s.Products().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)

	// Newest first; identical timestamps fall back to id descending.
	assert.Equal(t, "Ivory Pouch", products[0].Name)
	assert.Equal(t, "Coral Tote", products[2].Name)
}

func TestProductFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Products().Create(ctx, &domain.Product{
		Name: "Pearl Bag", Category: "bags", Featured: true, InStock: true,
	}))
	require.NoError(t, s.Products().Create(ctx, &domain.Product{
		Name: "Shell Necklace", Category: "jewelry", InStock: true,
	}))

	featured, err := s.Products().GetFeatured(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Pearl Bag", featured[0].Name)

	jewelry, err := s.Products().GetByCategory(ctx, "jewelry")
	require.NoError(t, err)
	require.Len(t, jewelry, 1)
	assert.Equal(t, "Shell Necklace", jewelry[0].Name)

	none, err := s.Products().GetByCategory(ctx, "shoes")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.Products().Delete(ctx, 42), store.ErrNotFound)
	assert.ErrorIs(t, s.Messages().Delete(ctx, 42), store.ErrNotFound)
	assert.ErrorIs(t, s.Subscribers().Delete(ctx, 42), store.ErrNotFound)
}

func TestIDsNotReusedAfterDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := &domain.Product{Name: "Coral Tote", Category: "bags"}
	require.NoError(t, s.Products().Create(ctx, first))
	second := &domain.Product{Name: "Amber Clutch", Category: "bags"}
	require.NoError(t, s.Products().Create(ctx, second))

	require.NoError(t, s.Products().Delete(ctx, first.ID))

	third := &domain.Product{Name: "Ivory Pouch", Category: "bags"}
	require.NoError(t, s.Products().Create(ctx, third))
	assert.Equal(t, second.ID+1, third.ID)
}

func TestMessageLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	message := &domain.Message{
		Name:    "Maria Santos",
		Email:   "maria@example.com",
		Subject: "Custom order",
		Message: "Do you ship to Portugal?",
	}
	require.NoError(t, s.Messages().Create(ctx, message))
	assert.Equal(t, domain.MessageStatusUnread, message.Status)

	require.NoError(t, s.Messages().UpdateStatus(ctx, message.ID, domain.MessageStatusRead))

	got, err := s.Messages().GetByID(ctx, message.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MessageStatusRead, got.Status)

	assert.ErrorIs(t, s.Messages().UpdateStatus(ctx, 99, domain.MessageStatusRead), store.ErrNotFound)
}

func TestSubscriberDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := &domain.Subscriber{Email: "maria@example.com"}
	require.NoError(t, s.Subscribers().Create(ctx, first))
	assert.Equal(t, domain.SubscriberStatusActive, first.Status)

	dup := &domain.Subscriber{Email: "maria@example.com"}
	assert.ErrorIs(t, s.Subscribers().Create(ctx, dup), store.ErrDuplicate)

	subscribers, err := s.Subscribers().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, subscribers, 1)
}

func TestAdminPasswordSurvivesPersistence(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	ctx := context.Background()

	admin := &domain.Admin{Username: "admin", Password: "$2a$10$somethinghashed"}
	require.NoError(t, s.Admins().Create(ctx, admin))

	// Reopen from disk: the hash must round-trip even though the domain
	// type hides it from JSON responses.
	reopened, err := Open(dir)
	require.NoError(t, err)

	got, err := reopened.Admins().GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$somethinghashed", got.Password)

	assert.ErrorIs(t, s.Admins().Create(ctx, &domain.Admin{Username: "admin"}), store.ErrDuplicate)

	require.NoError(t, s.Admins().UpdatePassword(ctx, "admin", "$2a$10$replacedhash"))
	got, err = s.Admins().GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$replacedhash", got.Password)
}

func TestCorruptFileSurfacesError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), []byte("{not json"), 0o644))

	s, err := Open(dir)
	require.NoError(t, err)

	_, err = s.Products().GetAll(context.Background())
	assert.Error(t, err)
}

func TestWrittenFileIsValidJSONArray(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, s.Products().Create(context.Background(), &domain.Product{
		Name: "Pearl Bag", Category: "bags",
	}))

	data, err := os.ReadFile(filepath.Join(dir, "products.json"))
	require.NoError(t, err)

	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, "Pearl Bag", raw[0]["name"])
}
