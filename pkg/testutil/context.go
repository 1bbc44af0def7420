package testutil

import (
	"net/http"

	"wmoracle/pkg/requestcontext"
)

// WithRequestID adds a request ID to the request context, simulating the
// requestid middleware.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	ctx := requestcontext.WithRequestID(req.Context(), requestID)
	return req.WithContext(ctx)
}

// WithClientMetadata adds client IP and User-Agent to the request context,
// simulating the metadata middleware.
func WithClientMetadata(req *http.Request, clientIP, userAgent string) *http.Request {
	ctx := requestcontext.WithClientMetadata(req.Context(), clientIP, userAgent)
	return req.WithContext(ctx)
}
