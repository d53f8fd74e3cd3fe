// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// SetlistCreatedEvent is published when a setlist is successfully
// created. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type SetlistCreatedEvent struct {
	SetlistID  uint64   `json:"setlist_id"`
	OwnerID    uint64   `json:"owner_id"`
	Name       string   `json:"name"`
	Date       string   `json:"date"`
	SongTitles []string `json:"song_titles"`
	CreatedAt  string   `json:"created_at"`
}
