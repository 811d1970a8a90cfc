// Package db runs schema migrations against the Postgres database.
package db

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/parkpal/parkpal-backend/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies all pending migrations from the embedded files.
// Safe to call on every startup, already-applied migrations are skipped.
func RunMigrations(dbURL string) error {
	log := logger.GetLogger()

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	// golang-migrate's pgx v5 driver requires the pgx5:// scheme.
	m, err := migrate.NewWithSourceInstance("iofs", source, convertToPgx5URL(dbURL))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Info("No schema_migrations table found, applying full schema")
	case err != nil:
		return fmt.Errorf("failed to read migration version: %w", err)
	case dirty:
		// A previous migration failed partway. Reset to the last clean
		// version so this run can retry it.
		cleanVersion := int(version) - 1
		log.Infow("Dirty migration state detected, resetting to retry",
			"dirtyVersion", version,
			"resettingTo", cleanVersion)
		if err := m.Force(cleanVersion); err != nil {
			return fmt.Errorf("failed to reset dirty migration: %w", err)
		}
	default:
		log.Infow("Current migration version", "version", version)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Database is up to date, no migrations to apply")
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	if version, dirty, err := m.Version(); err == nil {
		log.Infow("Migrations applied successfully",
			"currentVersion", version,
			"dirty", dirty)
	} else {
		log.Info("Migrations applied successfully")
	}
	return nil
}

func convertToPgx5URL(dbURL string) string {
	if rest, ok := strings.CutPrefix(dbURL, "postgresql:"); ok {
		return "pgx5:" + rest
	}
	if rest, ok := strings.CutPrefix(dbURL, "postgres:"); ok {
		return "pgx5:" + rest
	}
	return dbURL
}
