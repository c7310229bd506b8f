// Package middleware holds the chi re-exports plus the in house request
// middlewares: access logging, tracking and log context stamping
package middleware

import (
	"net/http"
	"strings"
	"time"

	"easel/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLogOptions shapes the access line emitted per request
type AccessLogOptions struct {
	// Slow promotes requests running at least this long to warn. Zero never
	Slow time.Duration
	// Skip lists path suffixes that never log, typically health probes.
	// Suffix matching keeps the list valid under any mount prefix
	Skip []string
}

// AccessLogZerolog writes one structured line per request: verb, path,
// status, bytes and elapsed time. It logs through the request scoped logger
// so request_id lands on every line
func AccessLogZerolog(opt AccessLogOptions) Middleware {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			for _, s := range opt.Skip {
				if strings.HasSuffix(r.URL.Path, s) {
					next.ServeHTTP(w, r)
					return
				}
			}

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			took := time.Since(start)

			// a handler that never writes leaves the wrapper at zero
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			lg := logger.C(r.Context())
			ev := lg.Info()
			if opt.Slow > 0 && took >= opt.Slow {
				ev = lg.Warn()
			}
			ev.Str("path", r.URL.Path).
				Str("method", r.Method).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("took", took).
				Msg("request served")
		}
		return http.HandlerFunc(fn)
	}
}
