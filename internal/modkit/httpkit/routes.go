package httpkit

import (
	"easel/internal/platform/net/middleware"
	str "easel/internal/platform/strings"
)

// MountUnder mounts a subrouter at prefix and applies per-module middlewares.
// The prefix is normalized to a single leading slash and must not be the root
func MountUnder(r Router, prefix string, mw []middleware.Middleware, mount func(Router)) {
	r.Route(str.MustPrefix(prefix), func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}
