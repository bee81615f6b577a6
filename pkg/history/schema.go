package history

import (
	"context"
	"database/sql"
	"fmt"
)

const schemaVersion = 1

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS attempts (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at    INTEGER NOT NULL,
		duration_ms   INTEGER NOT NULL DEFAULT 0,
		device        TEXT NOT NULL,
		transport     TEXT NOT NULL DEFAULT '',
		ssid          TEXT NOT NULL DEFAULT '',
		scheme        TEXT NOT NULL DEFAULT '',
		outcome       TEXT NOT NULL,
		step          TEXT NOT NULL DEFAULT '',
		error         TEXT NOT NULL DEFAULT '',
		station_state TEXT NOT NULL DEFAULT '',
		ipv4_addr     TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS attempts_device_idx ON attempts (device, started_at)`,
	`CREATE TABLE IF NOT EXISTS meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}

func applyPragmas(ctx context.Context, db *sql.DB, readOnly bool) error {
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", int(defaultBusyTimeout.Milliseconds())),
	}
	if !readOnly {
		pragmas = append(pragmas,
			"PRAGMA journal_mode = WAL",
			"PRAGMA synchronous = NORMAL",
		)
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("history: apply pragma %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("history: begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("history: apply schema: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('schema_version', ?)
		 ON CONFLICT(key) DO NOTHING`, fmt.Sprint(schemaVersion)); err != nil {
		return fmt.Errorf("history: record schema version: %w", err)
	}
	return tx.Commit()
}
