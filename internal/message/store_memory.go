package message

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"swiftscreen/internal/domain"
	"swiftscreen/pkg/platform/sentinel"
)

// InMemoryStore keeps messages in memory for tests and dev.
type InMemoryStore struct {
	mu       sync.RWMutex
	messages map[uuid.UUID]*domain.Message
}

// NewMemoryStore constructs an empty in-memory message store.
func NewMemoryStore() *InMemoryStore {
	return &InMemoryStore{messages: make(map[uuid.UUID]*domain.Message)}
}

func (s *InMemoryStore) Create(_ context.Context, m *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[m.ID] = m
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, m *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.messages[m.ID]; !ok {
		return fmt.Errorf("message %s: %w", m.ID, sentinel.ErrNotFound)
	}
	s.messages[m.ID] = m
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.messages[id]; !ok {
		return fmt.Errorf("message %s: %w", id, sentinel.ErrNotFound)
	}
	delete(s.messages, id)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %s: %w", id, sentinel.ErrNotFound)
	}
	return m, nil
}

func (s *InMemoryStore) List(_ context.Context, f Filter) ([]*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Message, 0, len(s.messages))
	for _, m := range s.messages {
		if f.Matches(m) {
			out = append(out, m)
		}
	}
	// Newest first, matching the dashboard's default view.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}
