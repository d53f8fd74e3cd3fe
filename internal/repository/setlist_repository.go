// This file contains persistence for setlists. A setlist embeds full
// value copies of its songs (snapshot embedding): the songs_json column
// holds the serialized array taken at creation time, so later edits to
// the catalog never propagate into existing setlists.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmvaldes/setlist-helper/internal/model"
)

// SetlistRepo manages persistence for setlists.
type SetlistRepo struct {
	db *sql.DB
}

// NewSetlistRepo constructs a SetlistRepo with the given DB handle.
func NewSetlistRepo(db *sql.DB) *SetlistRepo {
	return &SetlistRepo{db: db}
}

// Create resolves each song id against the catalog, embeds the snapshots
// in the given order and inserts the setlist. Duplicate ids are allowed
// (a song may appear twice in one set). A missing song id aborts the
// whole creation with ErrSongNotFound. Resolution and insert share one
// transaction so the snapshots are taken from a consistent catalog state.
func (r *SetlistRepo) Create(ctx context.Context, sl *model.Setlist, songIDs []uint64) (err error) {
	if sl.Name == "" {
		return fmt.Errorf("setlist name must not be empty")
	}
	if len(songIDs) == 0 {
		return fmt.Errorf("setlist must contain at least one song")
	}

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

	const qSong = `SELECT ` + songCols + ` FROM songs WHERE id = ?`
	snapshots := make([]model.Song, 0, len(songIDs))
	for _, id := range songIDs {
		var s model.Song
		if err = scanSong(tx.QueryRowContext(ctx, qSong, id), &s); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				err = fmt.Errorf("song %d: %w", id, ErrSongNotFound)
			}
			return err
		}
		snapshots = append(snapshots, s)
	}

	data, err := json.Marshal(snapshots)
	if err != nil {
		return err
	}

	var owner any
	if sl.OwnerID != 0 {
		owner = sl.OwnerID
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO setlists (user_id, name, date, songs_json) VALUES (?, ?, ?, ?)`,
		owner, sl.Name, sl.Date, data)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	sl.ID = uint64(id)
	sl.Songs = snapshots

	return tx.QueryRowContext(ctx, `SELECT created_at FROM setlists WHERE id = ?`, sl.ID).Scan(&sl.CreatedAt)
}

// GetByID retrieves a setlist with its embedded songs decoded,
// returning ErrSetlistNotFound when there is no matching row.
func (r *SetlistRepo) GetByID(ctx context.Context, id uint64) (*model.Setlist, error) {
	const q = `SELECT id, user_id, name, date, songs_json, created_at FROM setlists WHERE id = ?`
	var (
		sl    model.Setlist
		owner sql.NullInt64
		data  []byte
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&sl.ID, &owner, &sl.Name, &sl.Date, &data, &sl.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSetlistNotFound
		}
		return nil, err
	}
	if owner.Valid {
		sl.OwnerID = uint64(owner.Int64)
	}
	if err := json.Unmarshal(data, &sl.Songs); err != nil {
		return nil, err
	}
	return &sl, nil
}

// ListByOwner returns the setlists created by one user, in id order.
func (r *SetlistRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Setlist, error) {
	const q = `SELECT id, user_id, name, date, songs_json, created_at
	           FROM setlists WHERE user_id = ? ORDER BY id`
	return r.querySetlists(ctx, q, ownerID)
}

// ListAll returns every setlist regardless of owner, in id order. Which
// of the two listings serves the API is a deployment policy decision,
// not a code path (see config.ScopeOwner / config.ScopeGlobal).
func (r *SetlistRepo) ListAll(ctx context.Context) ([]model.Setlist, error) {
	const q = `SELECT id, user_id, name, date, songs_json, created_at
	           FROM setlists ORDER BY id`
	return r.querySetlists(ctx, q)
}

func (r *SetlistRepo) querySetlists(ctx context.Context, q string, args ...any) ([]model.Setlist, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Setlist{}
	for rows.Next() {
		var (
			sl    model.Setlist
			owner sql.NullInt64
			data  []byte
		)
		if err := rows.Scan(&sl.ID, &owner, &sl.Name, &sl.Date, &data, &sl.CreatedAt); err != nil {
			return nil, err
		}
		if owner.Valid {
			sl.OwnerID = uint64(owner.Int64)
		}
		if err := json.Unmarshal(data, &sl.Songs); err != nil {
			return nil, err
		}
		out = append(out, sl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByID removes a setlist unconditionally, returning
// ErrSetlistNotFound when the id matches no row.
func (r *SetlistRepo) DeleteByID(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM setlists WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSetlistNotFound
	}
	return nil
}

// DeleteByIDAndOwner removes a setlist only if it belongs to the given
// owner. A setlist owned by someone else yields ErrForbidden so the
// handler can distinguish 403 from 404.
func (r *SetlistRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	var dbOwner sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM setlists WHERE id = ?`, id).Scan(&dbOwner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSetlistNotFound
		}
		return err
	}
	if dbOwner.Valid && uint64(dbOwner.Int64) != ownerID {
		return ErrForbidden
	}
	return r.DeleteByID(ctx, id)
}
