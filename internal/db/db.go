package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// Open connects to the SQLite file at dbPath and creates the tables if they
// don't exist yet.
func Open(ctx context.Context, dbPath string) (*sql.DB, error) {
	instance, err := sql.Open("sqlite", FormatDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := instance.PingContext(ctx); err != nil {
		instance.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Debug().Str("path", dbPath).Msg("database connection successful")

	if err := migrate(ctx, instance); err != nil {
		instance.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("migrations completed successfully")
	return instance, nil
}

func FormatDSN(path string) string {
	if path == "" {
		path = "shelf.db"
	}
	path = strings.TrimPrefix(path, "file:")

	// See: https://pkg.go.dev/modernc.org/sqlite#pkg-overview
	params := url.Values{}
	params.Set("mode", "rwc")
	params.Set("_time_format", "sqlite")
	params.Add("_pragma", "journal_mode(WAL)")
	params.Add("_pragma", "synchronous(NORMAL)")
	params.Add("_pragma", "busy_timeout(5000)")

	return "file:" + path + "?" + params.Encode()
}

func migrate(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS links (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		title TEXT NOT NULL,
		tags TEXT NOT NULL DEFAULT '[]',
		favicon TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS models (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		url TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_links_created_at ON links(created_at);
	CREATE INDEX IF NOT EXISTS idx_models_created_at ON models(created_at);
	`

	_, err := db.ExecContext(ctx, schema)
	return err
}
