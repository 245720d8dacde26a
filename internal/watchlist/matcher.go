package watchlist

import (
	"swiftscreen/internal/domain"
	"swiftscreen/internal/similarity"
)

// Default thresholds. Both are boundary-inclusive. A score at or above the
// partial threshold is a match; the full threshold only upgrades the match
// strength. The two values are tuned independently.
const (
	DefaultFullThreshold    = 0.85
	DefaultPartialThreshold = 0.75
)

// Matcher scores a query name against every snapshot entry plus its aliases
// and returns the single best match. Stateless; safe for concurrent use.
type Matcher struct {
	FullThreshold    float64
	PartialThreshold float64
}

// NewMatcher returns a Matcher with the default thresholds.
func NewMatcher() *Matcher {
	return &Matcher{
		FullThreshold:    DefaultFullThreshold,
		PartialThreshold: DefaultPartialThreshold,
	}
}

// Match scans the full snapshot: for each entry the best of the canonical
// name score and every alias score, then the best entry across the list.
// O(entries x aliases); large deployments may shard the snapshot, the
// contract does not change. The score is always reported; entry detail is
// attached only when a threshold was met.
func (m *Matcher) Match(query string, snap *Snapshot) domain.MatchResult {
	result := domain.MatchResult{Name: query, Kind: domain.MatchName}
	if snap == nil || snap.Size() == 0 {
		return result
	}

	var (
		best      float64
		bestEntry *domain.WatchlistEntry
	)
	for i := range snap.Entries {
		entry := &snap.Entries[i]
		score := similarity.Score(query, entry.Name)
		for _, alias := range entry.Aliases {
			if s := similarity.Score(query, alias); s > score {
				score = s
			}
		}
		if score > best {
			best = score
			bestEntry = entry
		}
	}

	result.Score = best
	result.IsMatch = best >= m.FullThreshold || best >= m.PartialThreshold
	switch {
	case best >= m.FullThreshold:
		result.Strength = domain.StrengthFull
	case best >= m.PartialThreshold:
		result.Strength = domain.StrengthPartial
	}

	if result.IsMatch && bestEntry != nil {
		result.MatchedName = bestEntry.Name
		result.Detail = &domain.EntryDetail{
			Type:     bestEntry.Type,
			Programs: bestEntry.Programs,
			Remarks:  bestEntry.Remarks,
			IDs:      bestEntry.IDs,
		}
	}
	return result
}
