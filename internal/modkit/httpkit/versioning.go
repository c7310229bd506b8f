package httpkit

import (
	"strings"

	"easel/internal/platform/net/middleware"
)

// MountAPI scopes fn under /api/{version} with mw applied to everything
// inside that scope. Stray slashes and whitespace on version are normalized
// before the prefix is built:
//
//	httpkit.MountAPI(r, " /v2/ ", httpkit.CommonStack(nil), images.MountRoutes)
func MountAPI(r Router, version string, mw []middleware.Middleware, fn func(Router)) {
	ver := strings.Trim(strings.TrimSpace(version), "/")
	MountUnder(r, "/api/"+ver, mw, fn)
}

// MountAPIV1 mounts under /api/v1, the only version easel currently serves.
func MountAPIV1(r Router, mw []middleware.Middleware, fn func(Router)) {
	MountAPI(r, "v1", mw, fn)
}
