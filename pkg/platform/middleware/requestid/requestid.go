// Package requestid assigns a correlation ID to every request so logs, audit
// events, and responses can be tied together.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"wmoracle/pkg/requestcontext"
)

// Header is the request/response header carrying the correlation ID.
const Header = "X-Request-ID"

// Middleware reuses an inbound X-Request-ID when present, otherwise mints a
// UUID. The ID is stored in the context and echoed on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		w.Header().Set(Header, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
