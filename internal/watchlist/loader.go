package watchlist

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"swiftscreen/internal/domain"
	"swiftscreen/pkg/platform/sentinel"
)

// State tracks the snapshot load lifecycle.
type State string

const (
	StateUnloaded State = "unloaded"
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateFailed   State = "failed"
)

// Source loads the full watchlist from wherever the refresh collaborator
// keeps it. The loader treats any error as "list unavailable" and will call
// Load again on the next demand.
type Source interface {
	Load(ctx context.Context) ([]domain.WatchlistEntry, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(ctx context.Context) ([]domain.WatchlistEntry, error)

func (f SourceFunc) Load(ctx context.Context) ([]domain.WatchlistEntry, error) {
	return f(ctx)
}

// Loader owns the snapshot lifecycle: lazy first load with single-flight
// semantics, retryable failure, atomic replace on refresh. A failed load is
// never cached as initialized; the next Snapshot call retries.
type Loader struct {
	source Source
	cache  *SnapshotCache
	logger *slog.Logger

	group singleflight.Group

	mu    sync.RWMutex
	state State
	snap  *Snapshot
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithSnapshotCache shares the last good snapshot through Redis so restarts
// and sibling instances skip the source on first load.
func WithSnapshotCache(cache *SnapshotCache) LoaderOption {
	return func(l *Loader) { l.cache = cache }
}

// WithLoaderLogger sets a logger for load outcomes.
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader constructs a Loader over the given source.
func NewLoader(source Source, opts ...LoaderOption) *Loader {
	l := &Loader{
		source: source,
		logger: slog.Default(),
		state:  StateUnloaded,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Snapshot returns the current snapshot, loading it on first use. Concurrent
// callers before load completion share one in-flight load; none issues a
// duplicate fetch. On failure the error wraps sentinel.ErrListUnavailable
// and the loader stays retryable.
func (l *Loader) Snapshot(ctx context.Context) (*Snapshot, error) {
	l.mu.RLock()
	if l.state == StateReady {
		snap := l.snap
		l.mu.RUnlock()
		return snap, nil
	}
	l.mu.RUnlock()

	v, err, _ := l.group.Do("load", func() (any, error) {
		return l.load(ctx, true)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, sentinel.ErrListUnavailable)
	}
	return v.(*Snapshot), nil
}

// Refresh fetches a fresh snapshot from the source, bypassing the cache, and
// replaces the current one atomically. Concurrent Match callers keep reading
// the old snapshot until the swap.
func (l *Loader) Refresh(ctx context.Context) (*Snapshot, error) {
	v, err, _ := l.group.Do("refresh", func() (any, error) {
		return l.load(ctx, false)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, sentinel.ErrListUnavailable)
	}
	return v.(*Snapshot), nil
}

// State reports the current lifecycle state.
func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Current returns the loaded snapshot without triggering a load, or nil.
func (l *Loader) Current() *Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap
}

// load runs outside l.mu: no lock is held across the source or cache calls.
func (l *Loader) load(ctx context.Context, useCache bool) (*Snapshot, error) {
	l.setState(StateLoading)

	if useCache && l.cache != nil {
		if entries, err := l.cache.Get(ctx); err == nil && len(entries) > 0 {
			snap := l.install(entries)
			l.logger.InfoContext(ctx, "watchlist snapshot restored from cache", "entries", snap.Size())
			return snap, nil
		}
	}

	entries, err := l.source.Load(ctx)
	if err != nil {
		// A failed refresh keeps serving the previous snapshot.
		l.mu.Lock()
		if l.snap != nil {
			l.state = StateReady
		} else {
			l.state = StateFailed
		}
		l.mu.Unlock()
		l.logger.ErrorContext(ctx, "watchlist load failed", "error", err)
		return nil, err
	}

	snap := l.install(entries)
	l.logger.InfoContext(ctx, "watchlist snapshot loaded", "entries", snap.Size())

	if l.cache != nil {
		if err := l.cache.Put(ctx, entries); err != nil {
			l.logger.WarnContext(ctx, "watchlist snapshot cache write failed", "error", err)
		}
	}
	return snap, nil
}

func (l *Loader) install(entries []domain.WatchlistEntry) *Snapshot {
	snap := &Snapshot{Entries: entries, LoadedAt: time.Now()}
	l.mu.Lock()
	l.state = StateReady
	l.snap = snap
	l.mu.Unlock()
	return snap
}

func (l *Loader) setState(s State) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
}
