package httpkit

import (
	"compress/flate"
	"time"

	"easel/internal/platform/net/middleware"
)

// CommonStack returns the baseline middleware slice every module mounts.
// corsOrigins scopes cross-origin access, empty means allow any origin.
// Compose with request tracking or throttling as needed in main
func CommonStack(corsOrigins []string) []middleware.Middleware {
	return []middleware.Middleware{
		// correlation first so every later layer logs with a request id
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.LogContext(),

		// panics become JSON 500s instead of closed connections
		middleware.RecoverJSON,

		middleware.NoCache(),

		// probe endpoints would drown the access log otherwise
		middleware.AccessLogZerolog(middleware.AccessLogOptions{
			Slow: 500 * time.Millisecond,
			Skip: []string{"/meta/health", "/meta/ready"},
		}),

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: corsOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}
