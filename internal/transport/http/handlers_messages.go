package httptransport

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"swiftscreen/internal/domain"
	"swiftscreen/internal/message"
	"swiftscreen/pkg/platform/httputil"
	"swiftscreen/pkg/requestcontext"
)

type messagesHandler struct {
	messages *message.Service
	logger   *slog.Logger
}

func newMessagesHandler(messages *message.Service, logger *slog.Logger) *messagesHandler {
	return &messagesHandler{messages: messages, logger: logger}
}

func (h *messagesHandler) Register(r chi.Router) {
	r.Route("/messages", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Delete("/", h.handleDelete)
			r.Post("/recheck", h.handleRecheck)
			r.Put("/status", h.handleSetStatus)
			r.Put("/notes", h.handleSetNotes)
		})
	})
}

func (h *messagesHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in, err := httputil.Decode[message.Input](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	m, err := h.messages.Create(ctx, in)
	if err != nil {
		h.logger.ErrorContext(ctx, "message create failed",
			"request_id", requestcontext.RequestID(ctx),
			"reference", in.Reference,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "message created",
		"request_id", requestcontext.RequestID(ctx),
		"reference", m.Reference,
		"status", m.Status.Disposition,
	)
	httputil.WriteJSON(w, http.StatusCreated, m)
}

func (h *messagesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	list, err := h.messages.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if list == nil {
		list = []*domain.Message{}
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *messagesHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	m, err := h.messages.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, m)
}

func (h *messagesHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.messages.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *messagesHandler) handleRecheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := idParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	resetOverride := r.URL.Query().Get("reset_override") == "true"

	m, err := h.messages.Recheck(ctx, id, resetOverride)
	if err != nil {
		h.logger.ErrorContext(ctx, "message recheck failed",
			"request_id", requestcontext.RequestID(ctx),
			"message_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, m)
}

type setStatusRequest struct {
	Status domain.Disposition `json:"status"`
}

func (h *messagesHandler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := idParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, err := httputil.Decode[setStatusRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	switch req.Status {
	case domain.DispositionClear, domain.DispositionProcessing, domain.DispositionFlagged:
	default:
		httputil.WriteError(w, httputil.Invalid("unknown status"))
		return
	}

	m, err := h.messages.SetStatus(ctx, id, req.Status, requestcontext.Actor(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, m)
}

type setNotesRequest struct {
	Notes string `json:"notes"`
}

func (h *messagesHandler) handleSetNotes(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, err := httputil.Decode[setNotesRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	m, err := h.messages.SetNotes(r.Context(), id, req.Notes)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, m)
}

func idParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, httputil.Invalid("invalid message id")
	}
	return id, nil
}

func filterFromQuery(r *http.Request) (message.Filter, error) {
	q := r.URL.Query()
	f := message.Filter{
		Search:       q.Get("search"),
		SenderName:   q.Get("sender"),
		ReceiverName: q.Get("receiver"),
		Reference:    q.Get("reference"),
		BankName:     q.Get("bank"),
		Status:       domain.Disposition(q.Get("status")),
	}

	if v := q.Get("date_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, httputil.Invalid("date_from must be RFC 3339")
		}
		f.DateFrom = &t
	}
	if v := q.Get("date_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, httputil.Invalid("date_to must be RFC 3339")
		}
		f.DateTo = &t
	}
	if v := q.Get("amount_min"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, httputil.Invalid("amount_min must be a number")
		}
		f.AmountMin = &n
	}
	if v := q.Get("amount_max"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, httputil.Invalid("amount_max must be a number")
		}
		f.AmountMax = &n
	}
	return f, nil
}
