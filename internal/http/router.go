// Package httpapi assembles the HTTP surface: public verification endpoints,
// operational endpoints, and the operator-only audit trail.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wmoracle/internal/admin"
	platformmetrics "wmoracle/internal/platform/metrics"
	"wmoracle/internal/ratelimit"
	verifyhandler "wmoracle/internal/verify/handler"
	"wmoracle/pkg/platform/httputil"
	adminmw "wmoracle/pkg/platform/middleware/admin"
	"wmoracle/pkg/platform/middleware/metadata"
	"wmoracle/pkg/platform/middleware/requestid"
	"wmoracle/pkg/platform/middleware/requesttime"
)

// Deps carries the wired dependencies for the router. Optional fields may be
// nil; the corresponding routes or middlewares are then left out.
type Deps struct {
	Logger *slog.Logger
	Verify *verifyhandler.Handler

	// HTTPMetrics instruments every route when set.
	HTTPMetrics *platformmetrics.HTTP

	// Admin routes are mounted only when both the handler and the token
	// service are present.
	Admin       *admin.Handler
	AdminTokens *adminmw.TokenService

	// Rate limiting applies to /verify only. A nil store or non-positive
	// limit disables it.
	RateLimitStore  ratelimit.Store
	RateLimit       int
	RateLimitWindow time.Duration
}

// NewRouter wires all endpoints with the shared middleware chain.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	if d.HTTPMetrics != nil {
		r.Use(d.HTTPMetrics.Middleware)
	}

	r.Get("/health", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(g chi.Router) {
		g.Use(ratelimit.Middleware(d.RateLimitStore, d.RateLimit, d.RateLimitWindow, d.Logger))
		d.Verify.Register(g)
	})

	if d.Admin != nil && d.AdminTokens != nil {
		r.Group(func(g chi.Router) {
			g.Use(adminmw.RequireAdmin(d.AdminTokens, d.Logger))
			d.Admin.Register(g)
		})
	}

	return r
}

// handleHealth reports liveness. It never checks dependencies: if the process
// answers, the service is up, and a degraded audit backend must not fail it.
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
