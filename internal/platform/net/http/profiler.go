package http

import (
	nethttp "net/http"

	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler exposes chi's pprof bundle under prefix when enabled, e.g.
// "/debug". Handle rather than Get keeps non-GET verbs working (pprof symbol
// lookups POST)
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	h := nethttp.StripPrefix(prefix, mw.Profiler())
	r.Handle(prefix, h)
	r.Handle(prefix+"/*", h)
}
