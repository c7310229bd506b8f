package middleware

import (
	"net/http"
	"time"

	pstrings "easel/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the wrapper shape everything in this package hands out.
// The rest of the tree imports these re-exports rather than chi directly,
// so swapping the mux vendor stays a one-file change
type Middleware = func(http.Handler) http.Handler

// RequestID propagates X-Request-ID, minting one when the client sent none
func RequestID() Middleware { return chimw.RequestID }

// RealIP rewrites RemoteAddr from the forwarding headers. Only safe behind a
// proxy that sets them
func RealIP() Middleware { return chimw.RealIP }

// Timeout cancels the request context once its budget elapses
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// NoCache stamps the response headers that defeat client and proxy caches
func NoCache() Middleware { return chimw.NoCache }

// Compress negotiates response compression at the given flate level
func Compress(level int) Middleware { return chimw.NewCompressor(level).Handler }

// RedirectSlashes 301s /stats/ to /stats
func RedirectSlashes() Middleware { return chimw.RedirectSlashes }

// StripSlashes drops a trailing slash before routing
func StripSlashes() Middleware { return chimw.StripSlashes }

// ThrottleBacklog admits limit requests at once and parks up to backlog more
// for at most ttl. Everything past that gets 503
func ThrottleBacklog(limit, backlog int, ttl time.Duration) Middleware {
	return chimw.ThrottleBacklog(limit, backlog, ttl)
}

// Heartbeat answers GET path with a bare 200 for load balancer probes
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// defaults applied when a CORSOptions field is left empty
var (
	corsMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsHeaders = []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"}
)

// CORSOptions is the narrow slice of go-chi/cors the service configures
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS builds the cors handler, filling empty method and header lists with
// the service defaults. An empty origin list allows every origin
func CORS(opt CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   opt.AllowedOrigins,
		AllowedMethods:   pstrings.IfEmpty(opt.AllowedMethods, corsMethods),
		AllowedHeaders:   pstrings.IfEmpty(opt.AllowedHeaders, corsHeaders),
		ExposedHeaders:   opt.ExposedHeaders,
		AllowCredentials: opt.AllowCredentials,
		MaxAge:           opt.MaxAge,
	})
}
