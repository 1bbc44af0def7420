package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	dErrors "wmoracle/pkg/domain-errors"
	"wmoracle/pkg/platform/httputil"
	"wmoracle/pkg/platform/middleware/metadata"
	"wmoracle/pkg/requestcontext"
)

// Middleware admits or rejects requests per client IP. A limit <= 0 disables
// the limiter entirely. Store errors log and allow.
func Middleware(store Store, limit int, window time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 || store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := requestcontext.ClientIP(ctx)
			if key == "" {
				key = metadata.ClientIPFromRequest(r)
			}

			result, err := store.Allow(ctx, key, limit, window)
			if err != nil {
				logger.ErrorContext(ctx, "rate limit check failed, allowing request",
					"request_id", requestcontext.RequestID(ctx),
					"client_ip", key,
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			if !result.ResetAt.IsZero() {
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
			}

			if !result.Allowed {
				httputil.WriteError(w, dErrors.New(dErrors.CodeTooManyRequests, "rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
