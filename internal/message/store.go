package message

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"swiftscreen/internal/domain"
)

// Filter narrows a message listing. Zero values mean "no constraint".
type Filter struct {
	// Search matches case-insensitively against the reference and both
	// party names.
	Search string

	SenderName   string
	ReceiverName string
	Reference    string
	BankName     string

	Status domain.Disposition

	DateFrom *time.Time
	DateTo   *time.Time

	AmountMin *float64
	AmountMax *float64
}

// Matches reports whether the message passes every set constraint.
func (f Filter) Matches(m *domain.Message) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(m.Reference), needle) &&
			!strings.Contains(strings.ToLower(m.Sender.Name), needle) &&
			!strings.Contains(strings.ToLower(m.Receiver.Name), needle) {
			return false
		}
	}
	if f.SenderName != "" && !containsFold(m.Sender.Name, f.SenderName) {
		return false
	}
	if f.ReceiverName != "" && !containsFold(m.Receiver.Name, f.ReceiverName) {
		return false
	}
	if f.Reference != "" && !containsFold(m.Reference, f.Reference) {
		return false
	}
	if f.BankName != "" &&
		!containsFold(m.Sender.BankName, f.BankName) &&
		!containsFold(m.Receiver.BankName, f.BankName) {
		return false
	}
	if f.Status != "" && m.Status.Disposition != f.Status {
		return false
	}
	if f.DateFrom != nil && m.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && m.Date.After(*f.DateTo) {
		return false
	}
	if f.AmountMin != nil && m.Amount < *f.AmountMin {
		return false
	}
	if f.AmountMax != nil && m.Amount > *f.AmountMax {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Store persists screened messages.
//
// Error contract: FindByID returns sentinel.ErrNotFound (optionally wrapped)
// when the message does not exist.
type Store interface {
	Create(ctx context.Context, m *domain.Message) error
	Update(ctx context.Context, m *domain.Message) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	List(ctx context.Context, f Filter) ([]*domain.Message, error)
}
