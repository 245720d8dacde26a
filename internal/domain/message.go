package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is a stored transaction message with pre-parsed party fields. The
// SWIFT wire parser lives outside this service; callers submit structured
// fields.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Reference string    `json:"transaction_ref"`
	Type      string    `json:"type,omitempty"`
	Date      time.Time `json:"date"`
	Currency  string    `json:"currency,omitempty"`
	Amount    float64   `json:"amount"`
	Purpose   string    `json:"purpose,omitempty"`
	Fees      string    `json:"fees,omitempty"`
	Notes     string    `json:"notes,omitempty"`

	Sender   Party `json:"sender"`
	Receiver Party `json:"receiver"`

	Status Status `json:"status"`

	// Last screening output, keyed by identity string. Kept on the record so
	// the dashboard can show per-identity results without re-screening.
	Checks        map[string]MatchResult    `json:"checks,omitempty"`
	BlacklistHits map[string]BlacklistMatch `json:"blacklist_hits,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
