package model

import "time"

// Setlist is an ordered, named, dated collection of song snapshots for a
// performance. Songs are embedded by value at creation time: editing or
// deleting the original Song afterwards never rewrites history except for
// the explicit cascade on song delete. OwnerID is the creating user; it
// may be zero for rows imported from older data without ownership.
//
// Date is a plain ISO 8601 calendar date ("2006-01-02"), not a timestamp;
// it names the performance day and carries no timezone.
type Setlist struct {
	ID        uint64    `json:"id"`         // setlists.id
	OwnerID   uint64    `json:"owner_id"`   // setlists.user_id
	Name      string    `json:"name"`       // setlists.name
	Date      string    `json:"date"`       // setlists.date
	Songs     []Song    `json:"songs"`      // decoded from setlists.songs_json
	CreatedAt time.Time `json:"created_at"` // setlists.created_at
}
