package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"conduct/pkg/requestcontext"
)

const requestIDHeader = "X-Request-Id"

// RequestID attaches a request ID to the context and response headers.
// An incoming X-Request-Id is trusted; otherwise a fresh UUID is minted.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	return requestcontext.RequestID(ctx)
}
