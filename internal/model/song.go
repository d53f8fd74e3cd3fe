package model

import "time"

// Song is a reusable catalog entry describing a piece in the band's
// repertoire. Key, Tempo, DurationMin and Notes are all optional; the
// canonical shape carries every field so callers can ignore the ones
// they do not use.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – song title (required, non-empty).
//  Key         – musical key such as "Em" or "Bb" (optional).
//  Tempo       – free-form tempo marking, e.g. "120 bpm" (optional).
//  DurationMin – approximate duration in whole minutes (0 = unknown).
//  Notes       – chord chart / lyric text (optional).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Song struct {
	ID          uint64    `json:"id"`           // songs.id
	Title       string    `json:"title"`        // songs.title
	Key         string    `json:"key"`          // songs.key
	Tempo       string    `json:"tempo"`        // songs.tempo
	DurationMin int       `json:"duration_min"` // songs.duration_min
	Notes       string    `json:"notes"`        // songs.notes
	CreatedAt   time.Time `json:"created_at"`   // songs.created_at
	UpdatedAt   time.Time `json:"updated_at"`   // songs.updated_at
}
