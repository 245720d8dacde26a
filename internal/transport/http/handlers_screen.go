package httptransport

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"swiftscreen/internal/blacklist"
	"swiftscreen/internal/domain"
	"swiftscreen/internal/screening"
	"swiftscreen/pkg/platform/httputil"
	"swiftscreen/pkg/requestcontext"
)

// screenHandler exposes one-shot party screening without storing a message.
type screenHandler struct {
	screener  *screening.Service
	blacklist *blacklist.Service
	logger    *slog.Logger
}

func newScreenHandler(screener *screening.Service, bl *blacklist.Service, logger *slog.Logger) *screenHandler {
	return &screenHandler{screener: screener, blacklist: bl, logger: logger}
}

func (h *screenHandler) Register(r chi.Router) {
	r.Post("/screen", h.handleScreen)
}

type screenRequest struct {
	Party domain.Party `json:"party"`
}

func (h *screenHandler) handleScreen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[screenRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if strings.TrimSpace(req.Party.Name) == "" {
		httputil.WriteError(w, httputil.Invalid("party name is required"))
		return
	}

	records, err := h.blacklist.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "load blacklist for screening failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	result, err := h.screener.Screen(ctx, &req.Party, records)
	if err != nil {
		h.logger.ErrorContext(ctx, "screening failed",
			"request_id", requestcontext.RequestID(ctx),
			"party", req.Party.Name,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
