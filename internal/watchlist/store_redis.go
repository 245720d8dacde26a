package watchlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"swiftscreen/internal/domain"
	"swiftscreen/pkg/platform/sentinel"
)

// Redis key for the shared snapshot payload.
const snapshotKey = "watchlist:snapshot"

// SnapshotCache shares the last good snapshot between instances via Redis so
// a restarted instance serves screening traffic before its first source
// fetch completes.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache constructs a cache with the given retention. A zero TTL
// keeps snapshots until the next Put.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl}
}

// Get returns the cached entries, or sentinel.ErrNotFound when the key is
// absent or expired.
func (c *SnapshotCache) Get(ctx context.Context) ([]domain.WatchlistEntry, error) {
	payload, err := c.client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cached snapshot: %w", err)
	}
	var entries []domain.WatchlistEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("decode cached snapshot: %w", err)
	}
	return entries, nil
}

// Put overwrites the cached snapshot.
func (c *SnapshotCache) Put(ctx context.Context, entries []domain.WatchlistEntry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("put cached snapshot: %w", err)
	}
	return nil
}
