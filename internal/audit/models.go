package audit

import (
	"time"

	"github.com/google/uuid"

	"swiftscreen/internal/domain"
)

// Action identifies what happened.
type Action string

const (
	ActionMessageScreened    Action = "message_screened"
	ActionStatusChanged      Action = "status_changed"
	ActionMessageRechecked   Action = "message_rechecked"
	ActionBlacklistUpdated   Action = "blacklist_updated"
	ActionWatchlistRefreshed Action = "watchlist_refreshed"
)

// Event is emitted from domain logic to capture key screening actions. Keep
// it transport-agnostic so sinks can fan out.
type Event struct {
	ID          uuid.UUID          `json:"id"`
	Action      Action             `json:"action"`
	Subject     string             `json:"subject,omitempty"`
	Disposition domain.Disposition `json:"disposition,omitempty"`
	Actor       string             `json:"actor,omitempty"`
	Detail      string             `json:"detail,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
}
