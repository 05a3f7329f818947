package cli

import (
	"bytes"
	"context"
	"testing"

	"noviqueen/internal/domain"
	"noviqueen/internal/store/file"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunImportCopiesAndSkips(t *testing.T) {
	ctx := context.Background()

	source, err := file.Open(t.TempDir())
	require.NoError(t, err)
	target, err := file.Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, source.Products().Create(ctx, &domain.Product{
		Name: "Pearl Bag", Price: 49.99, Category: "bags", InStock: true,
	}))
	require.NoError(t, source.Messages().Create(ctx, &domain.Message{
		Name: "Maria Santos", Email: "maria@example.com", Message: "Do you ship to Portugal?",
	}))
	require.NoError(t, source.Subscribers().Create(ctx, &domain.Subscriber{
		Email: "maria@example.com",
	}))
	require.NoError(t, source.Admins().Create(ctx, &domain.Admin{
		Username: "admin", Password: "$2a$10$somethinghashed",
	}))

	// The target already knows this subscriber; the import must skip it.
	require.NoError(t, target.Subscribers().Create(ctx, &domain.Subscriber{
		Email: "maria@example.com",
	}))

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(ctx)

	require.NoError(t, runImport(cmd, source, target))

	products, err := target.Products().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	messages, err := target.Messages().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, messages, 1)

	subscribers, err := target.Subscribers().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, subscribers, 1)

	admin, err := target.Admins().GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$somethinghashed", admin.Password)

	assert.Contains(t, out.String(), "subscribers: 0 imported, 1 skipped")
	assert.Contains(t, out.String(), "admin:       imported")
}

func TestRunImportIsRerunnable(t *testing.T) {
	ctx := context.Background()

	source, err := file.Open(t.TempDir())
	require.NoError(t, err)
	target, err := file.Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, source.Products().Create(ctx, &domain.Product{
		Name: "Pearl Bag", Price: 49.99, Category: "bags", InStock: true,
	}))
	require.NoError(t, source.Subscribers().Create(ctx, &domain.Subscriber{Email: "maria@example.com"}))
	require.NoError(t, source.Admins().Create(ctx, &domain.Admin{Username: "admin", Password: "$2a$10$hash"}))

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(ctx)

	require.NoError(t, runImport(cmd, source, target))
	require.NoError(t, runImport(cmd, source, target))

	// Products dedupe by name, so the second run imports nothing.
	products, err := target.Products().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	subscribers, err := target.Subscribers().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, subscribers, 1)

	assert.Contains(t, out.String(), "products:    0 imported, 1 skipped")
}
