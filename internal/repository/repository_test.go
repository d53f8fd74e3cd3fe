package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jmvaldes/setlist-helper/internal/database"
	"github.com/jmvaldes/setlist-helper/internal/model"
)

// setupTestDB creates an in-memory SQLite database with the schema
// applied. The pool is capped at one connection, so the memory database
// survives for the lifetime of the handle.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func mustCreateSong(t *testing.T, repo *SongRepo, title, key string) *model.Song {
	t.Helper()
	s := &model.Song{Title: title, Key: key}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("failed to create song %q: %v", title, err)
	}
	return s
}
