package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"wmoracle/internal/verify"
	"wmoracle/pkg/platform/httputil"
	"wmoracle/pkg/requestcontext"
)

// Service defines the interface for verification operations.
type Service interface {
	Verify(ctx context.Context, req verify.Request) (*verify.Result, error)
}

// Handler wires the verification endpoint to the verification service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a verification handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts verification endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/verify", h.HandleVerify)
}

// HandleVerify handles POST /verify requests.
//
// The HTTP status is 200 for every well-formed request: the verdict travels
// in the body, keeping "the service answered" separate from "the artifact is
// authentic". Only caller protocol violations produce a non-2xx response.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[VerifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Verify(ctx, verify.Request{
		Aid:          req.Aid,
		SchemeID:     req.SchemeID,
		EvidenceHash: req.EvidenceHash,
		Profile:      req.Profile(),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "verification failed",
			"request_id", requestID,
			"scheme_id", req.SchemeID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "verification handled",
		"request_id", requestID,
		"scheme_id", req.SchemeID,
		"ok", result.Ok,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}
