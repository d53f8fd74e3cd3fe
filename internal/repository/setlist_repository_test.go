package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jmvaldes/setlist-helper/internal/model"
)

func TestSetlistRepoCreateEmbedsSnapshots(t *testing.T) {
	db := setupTestDB(t)
	songs := NewSongRepo(db)
	setlists := NewSetlistRepo(db)
	ctx := context.Background()

	a := mustCreateSong(t, songs, "Canción A", "C")
	b := mustCreateSong(t, songs, "Canción B", "D")

	// Duplicates are allowed: a song may be played twice in one set.
	sl := &model.Setlist{OwnerID: 1, Name: "Ensayo", Date: "2026-09-05"}
	if err := setlists.Create(ctx, sl, []uint64{b.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("failed to create setlist: %v", err)
	}
	if sl.ID == 0 {
		t.Fatal("setlist id should be assigned")
	}

	got, err := setlists.GetByID(ctx, sl.ID)
	if err != nil {
		t.Fatalf("failed to get setlist: %v", err)
	}
	if len(got.Songs) != 3 {
		t.Fatalf("expected 3 embedded songs, got %d", len(got.Songs))
	}
	wantOrder := []uint64{b.ID, a.ID, b.ID}
	for i, s := range got.Songs {
		if s.ID != wantOrder[i] {
			t.Errorf("position %d: expected song %d, got %d", i, wantOrder[i], s.ID)
		}
	}
}

func TestSetlistRepoCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	songs := NewSongRepo(db)
	setlists := NewSetlistRepo(db)
	ctx := context.Background()

	s := mustCreateSong(t, songs, "Canción", "")

	if err := setlists.Create(ctx, &model.Setlist{Name: "", Date: "2026-09-05"}, []uint64{s.ID}); err == nil {
		t.Error("empty name should be rejected")
	}
	if err := setlists.Create(ctx, &model.Setlist{Name: "Vacío", Date: "2026-09-05"}, nil); err == nil {
		t.Error("empty song list should be rejected")
	}
	err := setlists.Create(ctx, &model.Setlist{Name: "Roto", Date: "2026-09-05"}, []uint64{s.ID, 9999})
	if !errors.Is(err, ErrSongNotFound) {
		t.Errorf("expected ErrSongNotFound for unknown id, got %v", err)
	}
	// The failed create must not leave a partial setlist behind.
	all, err := setlists.ListAll(ctx)
	if err != nil {
		t.Fatalf("failed to list setlists: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected no setlists after failed creates, got %d", len(all))
	}
}

func TestSetlistSnapshotIsolation(t *testing.T) {
	db := setupTestDB(t)
	songs := NewSongRepo(db)
	setlists := NewSetlistRepo(db)
	ctx := context.Background()

	s := mustCreateSong(t, songs, "A", "C")
	sl := &model.Setlist{OwnerID: 1, Name: "Concierto", Date: "2026-10-01"}
	if err := setlists.Create(ctx, sl, []uint64{s.ID}); err != nil {
		t.Fatalf("failed to create setlist: %v", err)
	}

	s.Title = "B"
	if err := songs.Update(ctx, s); err != nil {
		t.Fatalf("failed to update song: %v", err)
	}

	got, err := setlists.GetByID(ctx, sl.ID)
	if err != nil {
		t.Fatalf("failed to get setlist: %v", err)
	}
	if got.Songs[0].Title != "A" {
		t.Errorf("snapshot should keep the original title, got %q", got.Songs[0].Title)
	}
}

func TestSongDeleteCascadesIntoSetlists(t *testing.T) {
	db := setupTestDB(t)
	songs := NewSongRepo(db)
	setlists := NewSetlistRepo(db)
	ctx := context.Background()

	var ids []uint64
	for _, title := range []string{"Uno", "Dos", "Tres"} {
		ids = append(ids, mustCreateSong(t, songs, title, "").ID)
	}

	sl := &model.Setlist{OwnerID: 1, Name: "Con cascada", Date: "2026-11-11"}
	if err := setlists.Create(ctx, sl, ids); err != nil {
		t.Fatalf("failed to create setlist: %v", err)
	}
	untouched := &model.Setlist{OwnerID: 1, Name: "Sin cascada", Date: "2026-11-12"}
	if err := setlists.Create(ctx, untouched, []uint64{ids[0], ids[2]}); err != nil {
		t.Fatalf("failed to create setlist: %v", err)
	}

	// Delete the middle song; both setlists drop it, the rest keep
	// their relative order.
	if err := songs.Delete(ctx, ids[1]); err != nil {
		t.Fatalf("failed to delete song: %v", err)
	}

	got, err := setlists.GetByID(ctx, sl.ID)
	if err != nil {
		t.Fatalf("failed to get setlist: %v", err)
	}
	if len(got.Songs) != 2 || got.Songs[0].ID != ids[0] || got.Songs[1].ID != ids[2] {
		t.Errorf("cascade result wrong: %+v", got.Songs)
	}

	other, err := setlists.GetByID(ctx, untouched.ID)
	if err != nil {
		t.Fatalf("failed to get setlist: %v", err)
	}
	if len(other.Songs) != 2 {
		t.Errorf("setlist without the deleted song should be unchanged, got %d songs", len(other.Songs))
	}

	// Deleting a song referenced by nothing leaves setlists alone.
	lone := mustCreateSong(t, songs, "Suelta", "")
	if err := songs.Delete(ctx, lone.ID); err != nil {
		t.Fatalf("failed to delete song: %v", err)
	}
	again, err := setlists.GetByID(ctx, sl.ID)
	if err != nil {
		t.Fatalf("failed to get setlist: %v", err)
	}
	if len(again.Songs) != 2 {
		t.Errorf("unrelated delete changed a setlist: %d songs", len(again.Songs))
	}
}

func TestSetlistRepoOwnerScoping(t *testing.T) {
	db := setupTestDB(t)
	songs := NewSongRepo(db)
	setlists := NewSetlistRepo(db)
	ctx := context.Background()

	s := mustCreateSong(t, songs, "Compartida", "")

	mine := &model.Setlist{OwnerID: 1, Name: "Mía", Date: "2026-01-01"}
	theirs := &model.Setlist{OwnerID: 2, Name: "Ajena", Date: "2026-01-02"}
	for _, sl := range []*model.Setlist{mine, theirs} {
		if err := setlists.Create(ctx, sl, []uint64{s.ID}); err != nil {
			t.Fatalf("failed to create setlist: %v", err)
		}
	}

	got, err := setlists.ListByOwner(ctx, 1)
	if err != nil {
		t.Fatalf("failed to list by owner: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Mía" {
		t.Errorf("owner scoping wrong: %+v", got)
	}

	all, err := setlists.ListAll(ctx)
	if err != nil {
		t.Fatalf("failed to list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 setlists globally, got %d", len(all))
	}

	if err := setlists.DeleteByIDAndOwner(ctx, theirs.ID, 1); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden deleting another owner's setlist, got %v", err)
	}
	if err := setlists.DeleteByIDAndOwner(ctx, mine.ID, 1); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}
	if err := setlists.DeleteByID(ctx, 9999); !errors.Is(err, ErrSetlistNotFound) {
		t.Errorf("expected ErrSetlistNotFound, got %v", err)
	}
}
