// Package module defines the contract api modules implement plus the port
// plumbing that wires them together at bootstrap
package module

import (
	phttp "easel/internal/platform/net/http"
)

// Module is what the api service mounts. It lives in its own package so a
// module can name the contract without dragging in all of modkit
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
