package middleware

import (
	"net/http"

	"easel/internal/platform/logger"
	pnet "easel/internal/platform/net"
	"easel/internal/platform/reqctx"
)

// Track registers each in flight request with the tracker for its lifetime.
// The entry is released when the handler returns, panics included
func Track(reg *reqctx.Registry) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if reg == nil {
				next.ServeHTTP(w, r)
				return
			}
			rec := reg.Acquire(pnet.RequestID(r.Context()))
			defer reg.Release(rec.ID)

			// requests arriving without an id (RequestID not mounted) get
			// the generated one so logs and the tracker agree
			if pnet.RequestID(r.Context()) == "" {
				ctx := pnet.WithRequest(r.Context(), rec.ID)
				r = r.WithContext(logger.WithRequest(ctx, rec.ID))
			}
			next.ServeHTTP(w, r)
		})
	}
}
