// Package database constructs the configured Record Store backend and,
// for postgres, owns the connection and migration lifecycle.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"noviqueen/internal/config"
	"noviqueen/internal/store"
	"noviqueen/internal/store/file"
	"noviqueen/internal/store/postgres"
	"noviqueen/internal/store/sqlite"

	"go.uber.org/zap"
)

// Open builds the Record Store selected by cfg.Store.Backend. For the
// postgres backend, pending goose migrations in migrationsDir are applied
// before the store is returned.
func Open(cfg *config.Config, migrationsDir string, logger *zap.Logger) (store.Store, error) {
	switch cfg.Store.Backend {
	case "file":
		return file.Open(cfg.Store.DataDir)

	case "sqlite":
		return sqlite.Open(cfg.Store.SQLitePath)

	case "postgres":
		db, err := openPostgres(cfg.Store.Postgres)
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(db, migrationsDir, logger); err != nil {
			db.Close()
			return nil, err
		}
		return postgres.NewStore(db), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func openPostgres(cfg config.PostgresConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.Schema)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	return db, nil
}
