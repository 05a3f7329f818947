package database

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"noviqueen/internal/config"
)

// RunMigrations applies all pending goose migrations to the postgres
// database. The file and sqlite backends create their own schema and do
// not use this path.
func RunMigrations(db *sql.DB, migrationsDir string, logger *zap.Logger) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	logger.Info("Checking for pending migrations...", zap.String("dir", migrationsDir))

	if err := goose.Up(db, migrationsDir); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations completed successfully")
	return nil
}

// MigrationStatus prints the goose status table for the migrations dir.
func MigrationStatus(db *sql.DB, migrationsDir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.Status(db, migrationsDir)
}

// Status connects to the configured postgres backend and prints its
// migration state. Only the postgres backend has migrations; the file
// and sqlite backends bootstrap their own schema.
func Status(cfg *config.Config, migrationsDir string) error {
	if cfg.Store.Backend != "postgres" {
		return fmt.Errorf("store backend %q has no migrations", cfg.Store.Backend)
	}

	db, err := openPostgres(cfg.Store.Postgres)
	if err != nil {
		return err
	}
	defer db.Close()

	return MigrationStatus(db, migrationsDir)
}
