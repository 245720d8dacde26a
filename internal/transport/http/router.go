// Package httptransport is the thin HTTP layer. Handlers delegate to domain
// services; transport concerns stay isolated here.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"swiftscreen/internal/audit"
	"swiftscreen/internal/blacklist"
	"swiftscreen/internal/message"
	"swiftscreen/internal/platform/metrics"
	"swiftscreen/internal/platform/middleware"
	"swiftscreen/internal/screening"
	"swiftscreen/pkg/platform/httputil"
)

// Auditor records admin actions performed at the transport layer. Optional;
// nil disables emission.
type Auditor interface {
	Emit(ctx context.Context, e audit.Event)
}

// Deps carries everything the router mounts.
type Deps struct {
	Screener  *screening.Service
	Messages  *message.Service
	Blacklist *blacklist.Service
	Watchlist WatchlistControl
	Auditor   Auditor

	Validator middleware.TokenValidator
	Logger    *slog.Logger
	Metrics   *metrics.Metrics

	// Health reports readiness of backing stores. Nil means always healthy.
	Health func(ctx context.Context) error
}

// NewRouter wires all endpoints with the shared middleware chain.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	r.Get("/healthz", healthHandler(deps.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	screenH := newScreenHandler(deps.Screener, deps.Blacklist, deps.Logger)
	messagesH := newMessagesHandler(deps.Messages, deps.Logger)
	blacklistH := newBlacklistHandler(deps.Blacklist, deps.Logger)
	watchlistH := newWatchlistHandler(deps.Watchlist, deps.Auditor, deps.Logger)

	r.Route("/api/v1", func(api chi.Router) {
		screenH.Register(api)
		messagesH.Register(api)

		api.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireAuth(deps.Validator, deps.Logger))
			admin.Use(middleware.RequireAdmin(deps.Logger))
			blacklistH.Register(admin)
			watchlistH.Register(admin)
		})
	})

	return r
}

func healthHandler(health func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			if err := health(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"error":  err.Error(),
				})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
