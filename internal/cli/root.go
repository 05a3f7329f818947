// Package cli implements the catalogctl command line tool for
// inspecting and migrating catalog data out-of-band of the API.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"noviqueen/internal/config"
	"noviqueen/internal/database"
	"noviqueen/internal/logger"
	"noviqueen/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	JSON    bool // emit JSON instead of text
	Verbose bool
}

// NewRootCommand creates the root command for the catalogctl CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "catalogctl",
		Short: "Inspect and migrate catalog data",
		Long:  "catalogctl works against the same record store as the API, selected by the usual environment configuration.",
	}

	// Global flags
	cmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "emit JSON output")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewProductsCommand(opts))
	cmd.AddCommand(NewMessagesCommand(opts))
	cmd.AddCommand(NewSubscribersCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewMigrationsCommand(opts))

	return cmd
}

// openStore opens the record store the environment points at. The
// caller owns the returned store and must Close it.
func openStore(opts *RootOptions) (store.Store, *zap.Logger, error) {
	_ = godotenv.Load()
	cfg := config.Load()

	log := zap.NewNop()
	if opts.Verbose {
		log = logger.NewWithDefaults()
	}

	records, err := database.Open(cfg, "migrations", log)
	if err != nil {
		return nil, nil, err
	}
	return records, log, nil
}
