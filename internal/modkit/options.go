package modkit

import (
	"easel/internal/modkit/httpkit"
	"easel/internal/platform/net/middleware"
)

// WithName names the module for the port registry and logs
func WithName(name string) Option {
	return func(b *Built) { b.Name = name }
}

// WithPrefix sets the mount path, e.g. /images
func WithPrefix(prefix string) Option {
	return func(b *Built) { b.Prefix = prefix }
}

// WithMiddlewares appends per module middleware, outermost first
func WithMiddlewares(mw ...middleware.Middleware) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts hands the module the port set it should expose or consume; the
// concrete type stays whatever the caller passed
func WithPorts[T any](p T) Option {
	return func(b *Built) { b.Ports = p }
}

// WithSwagger toggles the swagger doc hooks for this module
func WithSwagger(on bool) Option {
	return func(b *Built) { b.SwaggerOn = on }
}

// WithSubrouter swaps the router the module's routes land on
func WithSubrouter(fn func(httpkit.Router) httpkit.Router) Option {
	return func(b *Built) { b.Subrouter = fn }
}

// WithRegister appends extra endpoints after the module's own
func WithRegister(fn func(httpkit.Router)) Option {
	return func(b *Built) { b.Register = fn }
}
