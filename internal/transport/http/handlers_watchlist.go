package httptransport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"swiftscreen/internal/audit"
	"swiftscreen/internal/watchlist"
	"swiftscreen/pkg/platform/httputil"
	"swiftscreen/pkg/requestcontext"
)

// WatchlistControl is the slice of the loader the admin surface needs.
type WatchlistControl interface {
	Refresh(ctx context.Context) (*watchlist.Snapshot, error)
	State() watchlist.State
	Current() *watchlist.Snapshot
}

type watchlistHandler struct {
	control WatchlistControl
	auditor Auditor
	logger  *slog.Logger
}

func newWatchlistHandler(control WatchlistControl, auditor Auditor, logger *slog.Logger) *watchlistHandler {
	return &watchlistHandler{control: control, auditor: auditor, logger: logger}
}

func (h *watchlistHandler) Register(r chi.Router) {
	r.Route("/watchlist", func(r chi.Router) {
		r.Post("/refresh", h.handleRefresh)
		r.Get("/status", h.handleStatus)
	})
}

type watchlistStatus struct {
	State    watchlist.State `json:"state"`
	Entries  int             `json:"entries"`
	LoadedAt *time.Time      `json:"loaded_at,omitempty"`
}

func (h *watchlistHandler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snap, err := h.control.Refresh(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "watchlist refresh failed",
			"request_id", requestcontext.RequestID(ctx),
			"actor", requestcontext.Actor(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "watchlist refreshed",
		"request_id", requestcontext.RequestID(ctx),
		"actor", requestcontext.Actor(ctx),
		"entries", snap.Size(),
	)
	if h.auditor != nil {
		h.auditor.Emit(ctx, audit.Event{
			Action: audit.ActionWatchlistRefreshed,
			Actor:  requestcontext.Actor(ctx),
			Detail: fmt.Sprintf("%d entries", snap.Size()),
		})
	}
	httputil.WriteJSON(w, http.StatusOK, statusOf(h.control.State(), snap))
}

func (h *watchlistHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, statusOf(h.control.State(), h.control.Current()))
}

func statusOf(state watchlist.State, snap *watchlist.Snapshot) watchlistStatus {
	s := watchlistStatus{State: state, Entries: snap.Size()}
	if snap != nil {
		s.LoadedAt = &snap.LoadedAt
	}
	return s
}
