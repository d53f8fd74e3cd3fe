// This file contains persistence for the song catalog. Songs are the
// authoritative records; setlists only hold value copies of them, so the
// one cross-entity rule lives here: deleting a song rewrites every
// setlist that embeds it.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/jmvaldes/setlist-helper/internal/model"
)

const songCols = "id, title, key, tempo, duration_min, notes, created_at, updated_at"

// SongRepo manages persistence for songs.
type SongRepo struct {
	db *sql.DB
}

// NewSongRepo constructs a SongRepo with the given DB handle.
func NewSongRepo(db *sql.DB) *SongRepo {
	return &SongRepo{db: db}
}

func scanSong(row interface{ Scan(...any) error }, s *model.Song) error {
	return row.Scan(&s.ID, &s.Title, &s.Key, &s.Tempo, &s.DurationMin, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
}

// Create inserts a new song and assigns the generated id back to the
// struct. Ids come from AUTOINCREMENT, so they are strictly increasing
// and never reused even after deletes. A follow-up SELECT populates the
// DB-default timestamp fields.
func (r *SongRepo) Create(ctx context.Context, s *model.Song) error {
	const q = `INSERT INTO songs (title, key, tempo, duration_min, notes) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Title, s.Key, s.Tempo, s.DurationMin, s.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = `SELECT ` + songCols + ` FROM songs WHERE id = ?`
	return scanSong(r.db.QueryRowContext(ctx, sel, s.ID), s)
}

// GetByID retrieves a song by id, returning ErrSongNotFound when there
// is no matching row.
func (r *SongRepo) GetByID(ctx context.Context, id uint64) (*model.Song, error) {
	const q = `SELECT ` + songCols + ` FROM songs WHERE id = ?`
	var s model.Song
	if err := scanSong(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSongNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListAll returns every song in insertion (id) order. An empty catalog
// yields an empty slice and nil error.
func (r *SongRepo) ListAll(ctx context.Context) ([]model.Song, error) {
	return r.querySongs(ctx, `SELECT `+songCols+` FROM songs ORDER BY id`)
}

// Search returns songs whose title or key contains term,
// case-insensitively. An empty term matches everything.
func (r *SongRepo) Search(ctx context.Context, term string) ([]model.Song, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.ListAll(ctx)
	}
	pattern := "%" + strings.ToLower(term) + "%"
	const q = `SELECT ` + songCols + ` FROM songs
	           WHERE lower(title) LIKE ? OR lower(key) LIKE ?
	           ORDER BY id`
	return r.querySongs(ctx, q, pattern, pattern)
}

func (r *SongRepo) querySongs(ctx context.Context, q string, args ...any) ([]model.Song, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Song{}
	for rows.Next() {
		var s model.Song
		if err := scanSong(rows, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces all fields of the song except id. A missing id is
// surfaced as ErrSongNotFound rather than a silent no-op. Setlists that
// embed the song keep their snapshot untouched.
func (r *SongRepo) Update(ctx context.Context, s *model.Song) error {
	const q = `UPDATE songs
	           SET title = ?, key = ?, tempo = ?, duration_min = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, s.Title, s.Key, s.Tempo, s.DurationMin, s.Notes, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSongNotFound
	}
	const sel = `SELECT ` + songCols + ` FROM songs WHERE id = ?`
	return scanSong(r.db.QueryRowContext(ctx, sel, s.ID), s)
}

// Delete removes the song and cascades into the setlists: every
// embedded songs array is filtered to drop entries with the deleted id,
// preserving the relative order of the rest. Row delete and setlist
// rewrites happen inside one transaction so no dangling reference can
// survive a partial failure.
func (r *SongRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrSongNotFound
		return err
	}

	// Collect the setlists first; the single-connection pool cannot
	// interleave row iteration with the UPDATEs below.
	type setlistRow struct {
		id   uint64
		data []byte
	}
	rows, err := tx.QueryContext(ctx, `SELECT id, songs_json FROM setlists`)
	if err != nil {
		return err
	}
	var lists []setlistRow
	for rows.Next() {
		var sr setlistRow
		if err = rows.Scan(&sr.id, &sr.data); err != nil {
			rows.Close()
			return err
		}
		lists = append(lists, sr)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return err
	}

	for _, sr := range lists {
		var songs []model.Song
		if err = json.Unmarshal(sr.data, &songs); err != nil {
			return err
		}
		kept := songs[:0]
		for _, s := range songs {
			if s.ID != id {
				kept = append(kept, s)
			}
		}
		if len(kept) == len(songs) {
			continue
		}
		var data []byte
		data, err = json.Marshal(kept)
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, `UPDATE setlists SET songs_json = ? WHERE id = ?`, data, sr.id); err != nil {
			return err
		}
	}
	return nil
}
