// Package modkit is the scaffolding api modules are assembled from: shared
// deps, functional options and the Built carrier module constructors read
package modkit

import (
	"easel/internal/modkit/httpkit"
	"easel/internal/modkit/module"
	"easel/internal/platform/net/middleware"
)

// Module re-exports the mounting contract so module packages only import
// modkit
type Module = module.Module

// Built carries the assembled settings back to a module constructor
type Built struct {
	Name      string
	Prefix    string
	Mw        []middleware.Middleware
	Ports     any
	SwaggerOn bool

	// router hooks with safe defaults, never nil after Build
	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Option adjusts one Built field
type Option func(*Built)

// Build folds opts over a zero Built, then fills the hook defaults
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	if b.Subrouter == nil {
		b.Subrouter = func(r httpkit.Router) httpkit.Router { return r }
	}
	if b.Register == nil {
		b.Register = func(httpkit.Router) {}
	}
	return b
}
