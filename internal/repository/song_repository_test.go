package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jmvaldes/setlist-helper/internal/model"
)

func TestSongRepoCreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSongRepo(db)
	ctx := context.Background()

	first := mustCreateSong(t, repo, "De Música Ligera", "Em")
	second := mustCreateSong(t, repo, "Persiana Americana", "Am")

	if first.ID == 0 || second.ID <= first.ID {
		t.Fatalf("expected strictly increasing ids, got %d then %d", first.ID, second.ID)
	}

	items, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("failed to list songs: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(items))
	}
	if items[0].Title != "De Música Ligera" || items[1].Title != "Persiana Americana" {
		t.Errorf("list not in insertion order: %q, %q", items[0].Title, items[1].Title)
	}
}

func TestSongRepoIDsNeverReused(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSongRepo(db)
	ctx := context.Background()

	var lastID uint64
	for i := 0; i < 3; i++ {
		s := mustCreateSong(t, repo, "Canción", "")
		if s.ID <= lastID {
			t.Fatalf("id %d not greater than previous %d", s.ID, lastID)
		}
		lastID = s.ID
		if err := repo.Delete(ctx, s.ID); err != nil {
			t.Fatalf("failed to delete song: %v", err)
		}
	}

	s := mustCreateSong(t, repo, "Última", "")
	if s.ID <= lastID {
		t.Errorf("id %d reused after deletes (last was %d)", s.ID, lastID)
	}
}

func TestSongRepoUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSongRepo(db)
	ctx := context.Background()

	s := mustCreateSong(t, repo, "Título viejo", "C")
	s.Title = "Título nuevo"
	s.Key = "D"
	s.Tempo = "120 bpm"
	s.DurationMin = 4
	s.Notes = "intro x2"
	if err := repo.Update(ctx, s); err != nil {
		t.Fatalf("failed to update song: %v", err)
	}

	got, err := repo.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("failed to get song: %v", err)
	}
	if got.Title != "Título nuevo" || got.Key != "D" || got.Tempo != "120 bpm" || got.DurationMin != 4 || got.Notes != "intro x2" {
		t.Errorf("update did not replace all fields: %+v", got)
	}

	missing := &model.Song{ID: 9999, Title: "Nada"}
	if err := repo.Update(ctx, missing); !errors.Is(err, ErrSongNotFound) {
		t.Errorf("expected ErrSongNotFound for missing id, got %v", err)
	}
}

func TestSongRepoDeleteNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSongRepo(db)

	if err := repo.Delete(context.Background(), 42); !errors.Is(err, ErrSongNotFound) {
		t.Errorf("expected ErrSongNotFound, got %v", err)
	}
}

func TestSongRepoSearch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSongRepo(db)
	ctx := context.Background()

	mustCreateSong(t, repo, "Wish You Were Here", "G")
	mustCreateSong(t, repo, "Comfortably Numb", "Bm")
	mustCreateSong(t, repo, "Breathe", "Em")

	got, err := repo.Search(ctx, "WISH")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Wish You Were Here" {
		t.Errorf("case-insensitive title match failed: %+v", got)
	}

	// Key matches too.
	got, err = repo.Search(ctx, "bm")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Comfortably Numb" {
		t.Errorf("key match failed: %+v", got)
	}

	// Empty term matches everything.
	got, err = repo.Search(ctx, "  ")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("empty term should match all, got %d", len(got))
	}

	got, err = repo.Search(ctx, "zeppelin")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}
