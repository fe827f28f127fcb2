package mines

import "time"

// ScoreRecord is a candidate best-time entry for a given board shape. The
// engine only proposes records; comparing against the stored table and
// persisting the winner is the caller's concern.
type ScoreRecord struct {
	GameParams
	Playtime time.Duration
}

// Improves reports whether this record beats a previously stored best time.
// A nil previous best is always improved upon.
func (r ScoreRecord) Improves(prev *time.Duration) bool {
	return prev == nil || r.Playtime < *prev
}
