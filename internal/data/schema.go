package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS ott (
    id       BIGSERIAL PRIMARY KEY,
    title    TEXT NOT NULL,
    director TEXT NOT NULL DEFAULT '',
    budget   TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    duration TEXT NOT NULL DEFAULT '',
    year     TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS ott_title_lower_idx ON ott (LOWER(title));
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS ott (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    title    TEXT NOT NULL,
    director TEXT NOT NULL DEFAULT '',
    budget   TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    duration TEXT NOT NULL DEFAULT '',
    year     TEXT NOT NULL DEFAULT ''
);
`

// Migrate creates the ott table for whichever driver db was opened with
func Migrate(ctx context.Context, db *sqlx.DB) error {
	var schema string

	switch db.DriverName() {
	case "postgres":
		schema = postgresSchema
	case "sqlite":
		schema = sqliteSchema
	default:
		return fmt.Errorf("migrate: unsupported driver %q", db.DriverName())
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate %s: %w", db.DriverName(), err)
	}

	return nil
}
