// Package watchlist matches query names against an in-memory sanctions
// watchlist snapshot and owns the snapshot's load lifecycle.
package watchlist

import (
	"time"

	"swiftscreen/internal/domain"
)

// Snapshot is an immutable set of watchlist entries loaded at one point in
// time. Refresh builds a new Snapshot and swaps the pointer; entries are
// never mutated after load.
type Snapshot struct {
	Entries  []domain.WatchlistEntry
	LoadedAt time.Time
}

// Size returns the number of entries.
func (s *Snapshot) Size() int {
	if s == nil {
		return 0
	}
	return len(s.Entries)
}
