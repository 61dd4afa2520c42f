// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

// Package migration applies the SQL files under migrations/ at startup.
//
// The server refuses to start on a dirty schema version.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunUp applies all pending up migrations found in dir.
func RunUp(dsn, dir string, logger *slog.Logger) error {
	migrator, err := migrate.New("file://"+dir, Pgx5URL(dsn))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceErr, dbErr := migrator.Close()
		if err := errors.Join(sourceErr, dbErr); err != nil {
			logger.Warn("migration_close_failed", slog.Any("error", err))
		}
	}()

	migrator.Log = &slogBridge{logger: logger}

	from, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to read version: %w", err)
	}
	if dirty {
		return fmt.Errorf("migration: schema is dirty at version %d", from)
	}

	err = migrator.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("migration_up_to_date", slog.Uint64("version", uint64(from)))
		return nil
	case err != nil:
		return fmt.Errorf("migration: up failed: %w", err)
	}

	to, _, _ := migrator.Version()
	logger.Info("migration_applied",
		slog.Uint64("from_version", uint64(from)),
		slog.Uint64("to_version", uint64(to)),
	)
	return nil
}

// Pgx5URL rewrites a postgres:// or postgresql:// URL to the pgx5:// scheme.
func Pgx5URL(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// slogBridge adapts migrate.Logger to slog at debug level.
type slogBridge struct {
	logger *slog.Logger
}

func (b *slogBridge) Printf(format string, args ...any) {
	b.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b *slogBridge) Verbose() bool { return false }
