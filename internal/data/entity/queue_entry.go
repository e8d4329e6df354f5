package entity

import "github.com/google/uuid"

type QueueEntryStatus string

const (
	QueueEntryActive    QueueEntryStatus = "ACTIVE"
	QueueEntryCancelled QueueEntryStatus = "CANCELLED"
)

// QueueEntry is one scheduled turn. Lowest Position among non-cancelled
// entries performs next; entries are cancelled, never deleted.
type QueueEntry struct {
	Base
	QueueID   uuid.UUID        `db:"queue_id"`
	DancerID  uuid.UUID        `db:"dancer_id"`
	Position  int              `db:"position"`
	SongTitle *string          `db:"song_title"`
	Artist    *string          `db:"artist"`
	Duration  *int             `db:"duration"` // seconds
	Status    QueueEntryStatus `db:"status"`
}

// QueueEntryDetail is an entry joined with its dancer's stage name.
type QueueEntryDetail struct {
	QueueEntry
	DancerStageName string
}
