package blacklist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"swiftscreen/internal/audit"
	"swiftscreen/internal/domain"
	"swiftscreen/pkg/platform/sentinel"
)

// Auditor records blacklist mutations. Optional; a nil auditor disables
// emission.
type Auditor interface {
	Emit(ctx context.Context, e audit.Event)
}

// Service owns blacklist CRUD and matching.
type Service struct {
	store   Store
	matcher *Matcher
	auditor Auditor
	logger  *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithAuditor sets the audit emitter for mutations.
func WithAuditor(a Auditor) Option {
	return func(s *Service) { s.auditor = a }
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService constructs a blacklist service over the given store.
func NewService(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("blacklist store is required")
	}
	s := &Service{
		store:   store,
		matcher: NewMatcher(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Input carries the caller-editable fields of a blacklist record.
type Input struct {
	INN   string                `json:"inn"`
	Names domain.BlacklistNames `json:"names"`
	Notes string                `json:"notes"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.INN) == "" && in.Names == (domain.BlacklistNames{}) {
		return fmt.Errorf("blacklist record needs an inn or at least one name")
	}
	return nil
}

// Add creates a record. INN, when present, must be unique across the list.
func (s *Service) Add(ctx context.Context, in Input) (*domain.BlacklistRecord, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.ensureINNFree(ctx, in.INN, uuid.Nil); err != nil {
		return nil, err
	}

	rec := &domain.BlacklistRecord{
		ID:        uuid.New(),
		INN:       strings.TrimSpace(in.INN),
		Names:     in.Names,
		Notes:     in.Notes,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Create(ctx, rec); err != nil {
		return nil, err
	}
	s.emit(ctx, audit.ActionBlacklistUpdated, "added "+rec.ID.String())
	return rec, nil
}

// Update replaces the editable fields of an existing record. CreatedAt is
// preserved.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*domain.BlacklistRecord, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureINNFree(ctx, in.INN, id); err != nil {
		return nil, err
	}

	rec := &domain.BlacklistRecord{
		ID:        id,
		INN:       strings.TrimSpace(in.INN),
		Names:     in.Names,
		Notes:     in.Notes,
		CreatedAt: existing.CreatedAt,
	}
	if err := s.store.Update(ctx, rec); err != nil {
		return nil, err
	}
	s.emit(ctx, audit.ActionBlacklistUpdated, "updated "+id.String())
	return rec, nil
}

// Remove deletes a record.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.emit(ctx, audit.ActionBlacklistUpdated, "removed "+id.String())
	return nil
}

// Get returns one record.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.BlacklistRecord, error) {
	return s.store.FindByID(ctx, id)
}

// List returns all records in stable order.
func (s *Service) List(ctx context.Context) ([]*domain.BlacklistRecord, error) {
	return s.store.List(ctx)
}

// Match screens one name against the current list.
func (s *Service) Match(ctx context.Context, name string) (*domain.BlacklistMatch, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load blacklist: %w", err)
	}
	return s.matcher.Match(name, records), nil
}

func (s *Service) ensureINNFree(ctx context.Context, inn string, selfID uuid.UUID) error {
	inn = strings.TrimSpace(inn)
	if inn == "" {
		return nil
	}
	existing, err := s.store.FindByINN(ctx, inn)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return fmt.Errorf("inn %s already blacklisted: %w", inn, sentinel.ErrConflict)
	}
	return nil
}

func (s *Service) emit(ctx context.Context, action audit.Action, detail string) {
	if s.auditor == nil {
		return
	}
	s.auditor.Emit(ctx, audit.Event{Action: action, Detail: detail})
}
