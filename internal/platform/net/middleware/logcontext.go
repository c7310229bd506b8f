package middleware

import (
	"net/http"

	"easel/internal/platform/logger"
	pnet "easel/internal/platform/net"
)

// LogContext copies the request id onto the logger's context key so every
// logger.C line downstream carries request_id. Mount it after RequestID
func LogContext() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := pnet.RequestID(r.Context()); id != "" {
				r = r.WithContext(logger.WithRequest(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}
