// Package message stores screened transaction messages and keeps their
// compliance status current.
package message

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"swiftscreen/internal/audit"
	"swiftscreen/internal/domain"
	"swiftscreen/internal/screening"
	"swiftscreen/pkg/requestcontext"
)

// Screener runs both matchers over one party.
type Screener interface {
	Screen(ctx context.Context, party *domain.Party, records []*domain.BlacklistRecord) (*screening.Result, error)
}

// RecordSource supplies the current blacklist records.
type RecordSource interface {
	List(ctx context.Context) ([]*domain.BlacklistRecord, error)
}

// Auditor records message lifecycle events. Optional.
type Auditor interface {
	Emit(ctx context.Context, e audit.Event)
}

// Service owns message CRUD and re-screening.
type Service struct {
	store    Store
	screener Screener
	records  RecordSource
	auditor  Auditor
	logger   *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithAuditor sets the audit emitter.
func WithAuditor(a Auditor) Option {
	return func(s *Service) { s.auditor = a }
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService constructs a message service.
func NewService(store Store, screener Screener, records RecordSource, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("message store is required")
	}
	if screener == nil {
		return nil, fmt.Errorf("screener is required")
	}
	if records == nil {
		return nil, fmt.Errorf("blacklist record source is required")
	}
	s := &Service{
		store:    store,
		screener: screener,
		records:  records,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Input carries the submittable fields of a transaction message.
type Input struct {
	Reference string       `json:"transaction_ref"`
	Type      string       `json:"type"`
	Date      time.Time    `json:"date"`
	Currency  string       `json:"currency"`
	Amount    float64      `json:"amount"`
	Purpose   string       `json:"purpose"`
	Fees      string       `json:"fees"`
	Notes     string       `json:"notes"`
	Sender    domain.Party `json:"sender"`
	Receiver  domain.Party `json:"receiver"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Reference) == "" {
		return fmt.Errorf("transaction reference is required")
	}
	if strings.TrimSpace(in.Sender.Name) == "" {
		return fmt.Errorf("sender name is required")
	}
	if strings.TrimSpace(in.Receiver.Name) == "" {
		return fmt.Errorf("receiver name is required")
	}
	return nil
}

// Create screens both parties and stores the message with the derived
// status.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Message, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	m := &domain.Message{
		ID:        uuid.New(),
		Reference: in.Reference,
		Type:      in.Type,
		Date:      in.Date,
		Currency:  in.Currency,
		Amount:    in.Amount,
		Purpose:   in.Purpose,
		Fees:      in.Fees,
		Notes:     in.Notes,
		Sender:    in.Sender,
		Receiver:  in.Receiver,
		CreatedAt: requestcontext.Now(ctx).UTC(),
	}

	auto, err := s.screen(ctx, m)
	if err != nil {
		return nil, err
	}
	m.Status = domain.Status{Disposition: auto}

	if err := s.store.Create(ctx, m); err != nil {
		return nil, err
	}
	s.emit(ctx, audit.Event{
		Action:      audit.ActionMessageScreened,
		Subject:     m.Reference,
		Disposition: m.Status.Disposition,
	})
	return m, nil
}

// Recheck re-screens an existing message against the current lists. A manual
// status override survives unless resetOverride is set.
func (s *Service) Recheck(ctx context.Context, id uuid.UUID, resetOverride bool) (*domain.Message, error) {
	m, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	auto, err := s.screen(ctx, m)
	if err != nil {
		return nil, err
	}
	if resetOverride {
		m.Status = m.Status.Reset(auto)
	} else {
		m.Status = m.Status.Apply(auto)
	}

	if err := s.store.Update(ctx, m); err != nil {
		return nil, err
	}
	s.emit(ctx, audit.Event{
		Action:      audit.ActionMessageRechecked,
		Subject:     m.Reference,
		Disposition: m.Status.Disposition,
	})
	return m, nil
}

// SetStatus applies a manual disposition override.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, d domain.Disposition, actor string) (*domain.Message, error) {
	m, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Status = m.Status.Override(d)
	if err := s.store.Update(ctx, m); err != nil {
		return nil, err
	}
	s.emit(ctx, audit.Event{
		Action:      audit.ActionStatusChanged,
		Subject:     m.Reference,
		Disposition: d,
		Actor:       actor,
	})
	return m, nil
}

// SetNotes updates the free-form notes.
func (s *Service) SetNotes(ctx context.Context, id uuid.UUID, notes string) (*domain.Message, error) {
	m, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Notes = notes
	if err := s.store.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Get returns one message.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	return s.store.FindByID(ctx, id)
}

// List returns messages passing the filter, newest first.
func (s *Service) List(ctx context.Context, f Filter) ([]*domain.Message, error) {
	return s.store.List(ctx, f)
}

// Delete removes a message.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

// screen runs both parties through the screener, stores the merged results
// on the message, and returns the combined automatic disposition.
func (s *Service) screen(ctx context.Context, m *domain.Message) (domain.Disposition, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return "", fmt.Errorf("load blacklist: %w", err)
	}

	sender, err := s.screener.Screen(ctx, &m.Sender, records)
	if err != nil {
		return "", fmt.Errorf("screen sender: %w", err)
	}
	receiver, err := s.screener.Screen(ctx, &m.Receiver, records)
	if err != nil {
		return "", fmt.Errorf("screen receiver: %w", err)
	}

	checks := make(map[string]domain.MatchResult, len(sender.Results)+len(receiver.Results))
	hits := make(map[string]domain.BlacklistMatch)
	for _, r := range []*screening.Result{sender, receiver} {
		for identity, match := range r.Results {
			checks[identity] = match
		}
		for identity, hit := range r.BlacklistHits {
			hits[identity] = hit
		}
	}
	m.Checks = checks
	m.BlacklistHits = hits

	if !sender.WatchlistChecked || !receiver.WatchlistChecked {
		s.logger.WarnContext(ctx, "message screened without watchlist",
			"reference", m.Reference,
		)
	}
	return domain.WorseDisposition(sender.Disposition, receiver.Disposition), nil
}

func (s *Service) emit(ctx context.Context, e audit.Event) {
	if s.auditor == nil {
		return
	}
	s.auditor.Emit(ctx, e)
}
