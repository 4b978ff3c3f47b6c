// cmd/tools/dbmigrate/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/leaguedesk/internal/config"
	"github.com/codr1/leaguedesk/internal/db"
)

func main() {
	var (
		configPath     = flag.String("config", "config/app.yaml", "Path to the leaguedesk config file")
		dbPath         = flag.String("db", "", "Path to SQLite database (overrides the config file)")
		migrationsPath = flag.String("migrations", "", "Path to a migrations directory (defaults to the embedded migrations)")
		command        = flag.String("command", "up", "Command to run (up, down, version, force)")
		forceVersion   = flag.Int("version", -1, "Version to force with -command force")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	target, err := resolveDatabase(*configPath, *dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve database path")
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create database directory")
	}

	m, err := newMigrator(target, *migrationsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create migrate instance")
	}
	defer m.Close()

	logger := log.With().Str("db", target).Str("command", *command).Logger()
	switch *command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
		logger.Info().Msg("Migrations applied")

	case "down":
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal().Err(err).Msg("Failed to roll back migration")
		}
		logger.Info().Msg("Rolled back one migration")

	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			logger.Fatal().Err(err).Msg("Failed to get version")
		}
		logger.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current schema version")

	case "force":
		if *forceVersion < 0 {
			logger.Fatal().Msg("-version is required with -command force")
		}
		if err := m.Force(*forceVersion); err != nil {
			logger.Fatal().Err(err).Msg("Failed to force version")
		}
		logger.Info().Int("version", *forceVersion).Msg("Schema version forced")

	default:
		logger.Fatal().Msg("Unknown command")
	}
}

func resolveDatabase(configPath, dbPath string) (string, error) {
	if dbPath == "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return "", err
		}
		dbPath = cfg.Database.Filename
	}
	return filepath.Abs(dbPath)
}

func newMigrator(dbPath, migrationsPath string) (*migrate.Migrate, error) {
	databaseURL := fmt.Sprintf("sqlite3://%s", dbPath)
	if migrationsPath == "" {
		src, err := db.MigrationSource()
		if err != nil {
			return nil, err
		}
		return migrate.NewWithSourceInstance("iofs", src, databaseURL)
	}

	absMigrations, err := filepath.Abs(migrationsPath)
	if err != nil {
		return nil, fmt.Errorf("invalid migrations path: %w", err)
	}
	if _, err := os.Stat(absMigrations); err != nil {
		return nil, fmt.Errorf("migrations directory: %w", err)
	}
	return migrate.New("file://"+absMigrations, databaseURL)
}
