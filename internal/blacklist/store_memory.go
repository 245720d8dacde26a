package blacklist

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"swiftscreen/internal/domain"
	"swiftscreen/pkg/platform/sentinel"
)

// InMemoryStore keeps blacklist records in memory for tests and dev.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*domain.BlacklistRecord
}

// NewMemoryStore constructs an empty in-memory blacklist store.
func NewMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[uuid.UUID]*domain.BlacklistRecord)}
}

func (s *InMemoryStore) Create(_ context.Context, rec *domain.BlacklistRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, rec *domain.BlacklistRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.ID]; !ok {
		return fmt.Errorf("blacklist record %s: %w", rec.ID, sentinel.ErrNotFound)
	}
	s.records[rec.ID] = rec
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("blacklist record %s: %w", id, sentinel.ErrNotFound)
	}
	delete(s.records, id)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*domain.BlacklistRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("blacklist record %s: %w", id, sentinel.ErrNotFound)
	}
	return rec, nil
}

func (s *InMemoryStore) FindByINN(_ context.Context, inn string) (*domain.BlacklistRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.INN != "" && rec.INN == inn {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("blacklist record inn=%s: %w", inn, sentinel.ErrNotFound)
}

func (s *InMemoryStore) List(_ context.Context) ([]*domain.BlacklistRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.BlacklistRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	// Stable order for reproducible matching and listing.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}
