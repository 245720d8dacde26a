// Package screening orchestrates watchlist and blacklist checks for every
// identity a transaction party exposes.
package screening

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"swiftscreen/internal/blacklist"
	"swiftscreen/internal/domain"
	"swiftscreen/internal/ownership"
	"swiftscreen/internal/screening/metrics"
	"swiftscreen/internal/watchlist"
	"swiftscreen/pkg/platform/sentinel"
)

// SnapshotProvider hands out the current watchlist snapshot, loading it on
// first use.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*watchlist.Snapshot, error)
}

// Service runs both matchers over a party's collected identities.
type Service struct {
	loader    SnapshotProvider
	wlMatcher *watchlist.Matcher
	blMatcher *blacklist.Matcher
	walker    *ownership.Walker
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithWatchlistMatcher overrides the default watchlist matcher.
func WithWatchlistMatcher(m *watchlist.Matcher) Option {
	return func(s *Service) { s.wlMatcher = m }
}

// WithBlacklistMatcher overrides the default blacklist matcher.
func WithBlacklistMatcher(m *blacklist.Matcher) Option {
	return func(s *Service) { s.blMatcher = m }
}

// NewService constructs a screening service over the given snapshot provider.
func NewService(loader SnapshotProvider, opts ...Option) *Service {
	s := &Service{
		loader:    loader,
		wlMatcher: watchlist.NewMatcher(),
		blMatcher: blacklist.NewMatcher(),
		walker:    ownership.NewWalker(),
		logger:    slog.Default(),
		tracer:    otel.Tracer("swiftscreen/screening"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is the outcome of screening one party.
type Result struct {
	// Per-identity watchlist results, keyed by the identity string.
	Results map[string]domain.MatchResult `json:"results"`

	// Per-identity blacklist hits. Absent identities had no hit.
	BlacklistHits map[string]domain.BlacklistMatch `json:"blacklist_hits,omitempty"`

	Disposition domain.Disposition `json:"disposition"`

	// WatchlistChecked is false when the snapshot could not be loaded and
	// only the blacklist ran.
	WatchlistChecked bool `json:"watchlist_checked"`

	IdentitiesCollected int  `json:"identities_collected"`
	IdentitiesScreened  int  `json:"identities_screened"`
	Truncated           bool `json:"truncated,omitempty"`
}

// Screen collects the party's identities through its ownership graph and
// matches each one against the watchlist and the given blacklist records.
//
// Watchlist unavailability degrades the run instead of failing it: blacklist
// matching still happens and the result says the watchlist was skipped.
func (s *Service) Screen(ctx context.Context, party *domain.Party, records []*domain.BlacklistRecord) (*Result, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "screening.Screen")
	defer span.End()

	collection := s.walker.CollectParty(party)
	if collection.Truncated {
		s.logger.WarnContext(ctx, "ownership graph truncated",
			"party", partyName(party),
			"identities", len(collection.Identities),
		)
	}

	snap, err := s.loader.Snapshot(ctx)
	watchlistChecked := true
	switch {
	case errors.Is(err, sentinel.ErrListUnavailable):
		watchlistChecked = false
		snap = nil
		s.logger.WarnContext(ctx, "watchlist unavailable, screening blacklist only",
			"party", partyName(party),
			"error", err,
		)
	case err != nil:
		return nil, err
	}

	result := &Result{
		Results:             make(map[string]domain.MatchResult, len(collection.Identities)),
		BlacklistHits:       make(map[string]domain.BlacklistMatch),
		WatchlistChecked:    watchlistChecked,
		IdentitiesCollected: len(collection.Identities),
		Truncated:           collection.Truncated,
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, identity := range collection.Identities {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			var match domain.MatchResult
			if watchlistChecked {
				wlStart := time.Now()
				match = s.wlMatcher.Match(identity, snap)
				s.metrics.ObserveMatchLatency("watchlist", time.Since(wlStart))
			} else {
				match = domain.MatchResult{Name: identity, Kind: domain.MatchName}
			}

			blStart := time.Now()
			hit := s.blMatcher.Match(identity, records)
			s.metrics.ObserveMatchLatency("blacklist", time.Since(blStart))

			mu.Lock()
			defer mu.Unlock()
			result.Results[identity] = match
			if hit != nil {
				result.BlacklistHits[identity] = *hit
			}
			result.IdentitiesScreened++
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Partial results are still useful to the caller for diagnostics.
		return result, err
	}

	result.Disposition = Derive(result.Results, result.BlacklistHits)
	s.metrics.IncrementDisposition(string(result.Disposition))
	s.metrics.ObserveScreenLatency(time.Since(start))
	span.SetAttributes(
		attribute.Int("screening.identities", result.IdentitiesScreened),
		attribute.String("screening.disposition", string(result.Disposition)),
		attribute.Bool("screening.watchlist_checked", result.WatchlistChecked),
	)

	s.logger.InfoContext(ctx, "party screened",
		"party", partyName(party),
		"identities", result.IdentitiesScreened,
		"disposition", result.Disposition,
		"watchlist_checked", result.WatchlistChecked,
	)
	return result, nil
}

func partyName(p *domain.Party) string {
	if p == nil {
		return ""
	}
	return p.Name
}
