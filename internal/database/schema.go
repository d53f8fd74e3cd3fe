package database

import "database/sql"

// schema holds the bootstrap DDL. Every statement is idempotent
// (IF NOT EXISTS) so Migrate can run on every startup.
//
// INTEGER PRIMARY KEY AUTOINCREMENT guarantees ids are strictly
// increasing and never reused after a delete, which setlist snapshots
// rely on when the song cascade matches entries by id.
//
// setlists.songs_json stores the embedded song snapshots as a JSON
// array rather than foreign-key rows: a setlist keeps the songs exactly
// as they were when it was created.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'user',
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS songs (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		title        TEXT NOT NULL,
		key          TEXT NOT NULL DEFAULT '',
		tempo        TEXT NOT NULL DEFAULT '',
		duration_min INTEGER NOT NULL DEFAULT 0,
		notes        TEXT NOT NULL DEFAULT '',
		created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS setlists (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id    INTEGER,
		name       TEXT NOT NULL,
		date       TEXT NOT NULL,
		songs_json TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id    INTEGER NOT NULL,
		token_hash TEXT NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_setlists_user ON setlists (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_hash ON refresh_tokens (token_hash)`,
}

// Migrate creates any missing tables and indexes. Safe to call on every
// startup and from tests against an in-memory database.
func Migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
