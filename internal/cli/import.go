package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"noviqueen/internal/service"
	"noviqueen/internal/store"
	"noviqueen/internal/store/file"
)

// NewImportCommand creates the import command. It reads a JSON-file
// data directory and copies its records into whatever backend the
// environment points at, skipping rows that already exist.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	var fromDir string

	cmd := &cobra.Command{
		Use:          "import",
		Short:        "Import records from a JSON-file data directory",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := file.Open(fromDir)
			if err != nil {
				return fmt.Errorf("failed to open source directory: %w", err)
			}
			defer source.Close()

			target, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer target.Close()

			return runImport(cmd, source, target)
		},
	}

	cmd.Flags().StringVar(&fromDir, "from", "data", "source data directory")

	return cmd
}

func runImport(cmd *cobra.Command, source, target store.Store) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	products, err := source.Products().GetAll(ctx)
	if err != nil {
		return err
	}
	// Products carry no unique constraint, so dedupe by name against
	// what the target already holds. Rerunning an import is a no-op.
	existing, err := target.Products().GetAll(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(existing))
	for i := range existing {
		seen[existing[i].Name] = true
	}
	imported, skipped := 0, 0
	for i := range products {
		p := products[i]
		if seen[p.Name] {
			skipped++
			continue
		}
		p.ID = 0
		if err := target.Products().Create(ctx, &p); err != nil {
			return fmt.Errorf("failed to import product %q: %w", p.Name, err)
		}
		seen[p.Name] = true
		imported++
	}
	fmt.Fprintf(out, "products:    %d imported, %d skipped\n", imported, skipped)

	messages, err := source.Messages().GetAll(ctx)
	if err != nil {
		return err
	}
	imported, skipped = 0, 0
	for i := range messages {
		m := messages[i]
		m.ID = 0
		if err := target.Messages().Create(ctx, &m); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				skipped++
				continue
			}
			return fmt.Errorf("failed to import message from %q: %w", m.Email, err)
		}
		imported++
	}
	fmt.Fprintf(out, "messages:    %d imported, %d skipped\n", imported, skipped)

	subscribers, err := source.Subscribers().GetAll(ctx)
	if err != nil {
		return err
	}
	imported, skipped = 0, 0
	for i := range subscribers {
		s := subscribers[i]
		s.ID = 0
		if err := target.Subscribers().Create(ctx, &s); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				skipped++
				continue
			}
			return fmt.Errorf("failed to import subscriber %q: %w", s.Email, err)
		}
		imported++
	}
	fmt.Fprintf(out, "subscribers: %d imported, %d skipped\n", imported, skipped)

	// The admin credential migrates too, unless the target already
	// has one under the same username.
	admin, err := source.Admins().GetByUsername(ctx, service.DefaultAdminUsername)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	admin.ID = 0
	if err := target.Admins().Create(ctx, admin); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			fmt.Fprintln(out, "admin:       skipped (already present)")
			return nil
		}
		return fmt.Errorf("failed to import admin %q: %w", admin.Username, err)
	}
	fmt.Fprintln(out, "admin:       imported")

	return nil
}
