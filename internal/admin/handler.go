// Package admin exposes operator-only endpoints over the audit trail. Routes
// registered here must sit behind the admin token middleware.
package admin

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "wmoracle/pkg/domain-errors"
	"wmoracle/pkg/platform/audit"
	"wmoracle/pkg/platform/httputil"
	"wmoracle/pkg/requestcontext"
)

const (
	defaultEventLimit = 100
	maxEventLimit     = 1000
)

// Handler serves the audit trail to operators.
type Handler struct {
	store   audit.Store
	emitter *audit.Emitter
	logger  *slog.Logger
}

// New constructs an admin handler. The emitter may be nil when auditing is
// disabled; Dropped then always reports zero.
func New(store audit.Store, emitter *audit.Emitter, logger *slog.Logger) *Handler {
	return &Handler{
		store:   store,
		emitter: emitter,
		logger:  logger,
	}
}

// Register mounts admin endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/audit/events", h.HandleListEvents)
}

// HandleListEvents handles GET /admin/audit/events requests. Events come back
// newest first; ?limit caps the page size.
func (h *Handler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	limit := defaultEventLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = min(parsed, maxEventLimit)
	}

	events, err := h.store.Recent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "audit trail query failed",
			"request_id", requestID,
			"limit", limit,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "audit trail unavailable"))
		return
	}

	var dropped int64
	if h.emitter != nil {
		dropped = h.emitter.Dropped()
	}

	httputil.WriteJSON(w, http.StatusOK, EventsResponse{
		Events:  events,
		Total:   len(events),
		Dropped: dropped,
	})
}
