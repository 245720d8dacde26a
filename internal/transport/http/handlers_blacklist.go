package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"swiftscreen/internal/blacklist"
	"swiftscreen/internal/domain"
	"swiftscreen/pkg/platform/httputil"
	"swiftscreen/pkg/requestcontext"
)

type blacklistHandler struct {
	blacklist *blacklist.Service
	logger    *slog.Logger
}

func newBlacklistHandler(bl *blacklist.Service, logger *slog.Logger) *blacklistHandler {
	return &blacklistHandler{blacklist: bl, logger: logger}
}

func (h *blacklistHandler) Register(r chi.Router) {
	r.Route("/blacklist", func(r chi.Router) {
		r.Post("/", h.handleAdd)
		r.Get("/", h.handleList)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleRemove)
	})
}

func (h *blacklistHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in, err := httputil.Decode[blacklist.Input](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rec, err := h.blacklist.Add(ctx, in)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "blacklist record added",
		"request_id", requestcontext.RequestID(ctx),
		"actor", requestcontext.Actor(ctx),
		"record_id", rec.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, rec)
}

func (h *blacklistHandler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.blacklist.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if list == nil {
		list = []*domain.BlacklistRecord{}
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *blacklistHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, httputil.Invalid("invalid record id"))
		return
	}

	in, err := httputil.Decode[blacklist.Input](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rec, err := h.blacklist.Update(ctx, id, in)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (h *blacklistHandler) handleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, httputil.Invalid("invalid record id"))
		return
	}

	if err := h.blacklist.Remove(ctx, id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "blacklist record removed",
		"request_id", requestcontext.RequestID(ctx),
		"actor", requestcontext.Actor(ctx),
		"record_id", id,
	)
	w.WriteHeader(http.StatusNoContent)
}
