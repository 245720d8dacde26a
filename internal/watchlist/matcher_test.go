package watchlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"swiftscreen/internal/domain"
	"swiftscreen/internal/similarity"
)

func snapshotOf(entries ...domain.WatchlistEntry) *Snapshot {
	return &Snapshot{Entries: entries, LoadedAt: time.Now()}
}

func TestMatcherMatch(t *testing.T) {
	m := NewMatcher()

	t.Run("exact canonical name scores 1.0", func(t *testing.T) {
		snap := snapshotOf(domain.WatchlistEntry{Name: "John Smith", Type: domain.EntityIndividual})

		result := m.Match("John Smith", snap)

		assert.True(t, result.IsMatch)
		assert.Equal(t, 1.0, result.Score)
		assert.Equal(t, domain.StrengthFull, result.Strength)
		assert.Equal(t, "John Smith", result.MatchedName)
		assert.Equal(t, domain.MatchName, result.Kind)
	})

	t.Run("alias match reports canonical name", func(t *testing.T) {
		snap := snapshotOf(domain.WatchlistEntry{
			Name:    "Ivan Petrov",
			Aliases: []string{"John Smith"},
		})

		result := m.Match("John Smith", snap)

		assert.True(t, result.IsMatch)
		assert.Equal(t, 1.0, result.Score)
		assert.Equal(t, "Ivan Petrov", result.MatchedName)
	})

	t.Run("no match keeps score but drops detail", func(t *testing.T) {
		snap := snapshotOf(domain.WatchlistEntry{
			Name:     "Completely Different Company",
			Programs: []string{"SDGT"},
		})

		result := m.Match("John Smith", snap)

		assert.False(t, result.IsMatch)
		assert.Empty(t, result.MatchedName)
		assert.Nil(t, result.Detail)
		assert.GreaterOrEqual(t, result.Score, 0.0)
	})

	t.Run("detail carries entry fields when matched", func(t *testing.T) {
		snap := snapshotOf(domain.WatchlistEntry{
			Name:     "Acme Export LLC",
			Type:     domain.EntityOrganization,
			Programs: []string{"UKRAINE-EO13662"},
			Remarks:  "secondary sanctions risk",
			IDs:      []string{"1234567890"},
		})

		result := m.Match("Acme Export LLC", snap)

		assert.True(t, result.IsMatch)
		if assert.NotNil(t, result.Detail) {
			assert.Equal(t, domain.EntityOrganization, result.Detail.Type)
			assert.Equal(t, []string{"UKRAINE-EO13662"}, result.Detail.Programs)
			assert.Equal(t, "secondary sanctions risk", result.Detail.Remarks)
			assert.Equal(t, []string{"1234567890"}, result.Detail.IDs)
		}
	})

	t.Run("thresholds are boundary inclusive", func(t *testing.T) {
		// Pin the thresholds to the score the inputs actually produce so the
		// boundary itself is exercised, not an approximation of it.
		score := similarity.Score("Jon Smyth", "John Smith")
		assert.Greater(t, score, 0.0)
		assert.Less(t, score, 1.0)

		snap := snapshotOf(domain.WatchlistEntry{Name: "John Smith"})

		atBoundary := &Matcher{FullThreshold: 0.99, PartialThreshold: score}
		result := atBoundary.Match("Jon Smyth", snap)
		assert.True(t, result.IsMatch)
		assert.Equal(t, domain.StrengthPartial, result.Strength)

		aboveBoundary := &Matcher{FullThreshold: 0.99, PartialThreshold: score + 1e-9}
		result = aboveBoundary.Match("Jon Smyth", snap)
		assert.False(t, result.IsMatch)
		assert.Equal(t, domain.StrengthNone, result.Strength)

		fullAtBoundary := &Matcher{FullThreshold: score, PartialThreshold: score}
		result = fullAtBoundary.Match("Jon Smyth", snap)
		assert.True(t, result.IsMatch)
		assert.Equal(t, domain.StrengthFull, result.Strength)
	})

	t.Run("best entry wins across the snapshot", func(t *testing.T) {
		snap := snapshotOf(
			domain.WatchlistEntry{Name: "Jon Smith"},
			domain.WatchlistEntry{Name: "John Smith"},
			domain.WatchlistEntry{Name: "Jonathan Smithers"},
		)

		result := m.Match("John Smith", snap)

		assert.Equal(t, 1.0, result.Score)
		assert.Equal(t, "John Smith", result.MatchedName)
	})

	t.Run("nil and empty snapshots", func(t *testing.T) {
		result := m.Match("John Smith", nil)
		assert.False(t, result.IsMatch)
		assert.Equal(t, 0.0, result.Score)

		result = m.Match("John Smith", snapshotOf())
		assert.False(t, result.IsMatch)
	})

	t.Run("empty query never matches", func(t *testing.T) {
		snap := snapshotOf(domain.WatchlistEntry{Name: "John Smith"})
		result := m.Match("", snap)
		assert.False(t, result.IsMatch)
		assert.Equal(t, 0.0, result.Score)
	})
}
