package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"noviqueen/internal/config"
	"noviqueen/internal/database"
)

// NewMigrationsCommand creates the migrations status command.
func NewMigrationsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "migrations",
		Short:        "Show postgres migration status",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg := config.Load()
			return database.Status(cfg, "migrations")
		},
	}
}
