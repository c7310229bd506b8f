// Package httpkit is the surface modules program against: router seam,
// handler adapters and the middleware stack, re-exported so module code
// never imports the platform http packages directly
package httpkit

import (
	"net/http"

	phttp "easel/internal/platform/net/http"
	"easel/internal/platform/net/http/bind"
)

type (
	// Envelope is the wire body every endpoint answers with
	Envelope = phttp.Envelope

	// Response lets a handler pick its own status and headers
	Response = phttp.Response

	// Handler is what the verb helpers ultimately register
	Handler = phttp.Handler

	// Router is the mounting seam modules receive
	Router = phttp.Router

	// FieldLevel is the callback view a custom validate tag receives
	FieldLevel = bind.FieldLevel
)

// RegisterValidation installs a custom validate tag for bound request bodies.
// Call it at module construction, before any request is bound
func RegisterValidation(tag string, fn func(FieldLevel) bool) error {
	return bind.RegisterValidation(tag, fn)
}

// respond folds a handler's (value, error) pair into a Response. Handlers
// return a ready Response when they need a status other than 200
func respond(v any, err error) Response {
	if err != nil {
		return phttp.Error(err)
	}
	if ready, ok := v.(Response); ok {
		return ready
	}
	return phttp.OK(v)
}

// JSON adapts a handler that takes a decoded JSON body. Binding runs the
// shared bind pipeline, so unknown fields, oversize bodies, and failed
// validate tags are rejected before the handler runs
func JSON[T any](h func(*http.Request, T) (any, error)) Handler {
	return Handle(func(req *http.Request) Response {
		in, err := bind.ParseJSON[T](req)
		if err != nil {
			return respond(nil, err)
		}
		return respond(h(req, in))
	})
}

// Call adapts a bodyless handler
func Call(h func(*http.Request) (any, error)) Handler {
	return Handle(func(req *http.Request) Response {
		return respond(h(req))
	})
}

// Handle adapts a Response-returning function directly
func Handle(h func(*http.Request) Response) Handler {
	return phttp.Handle(h)
}
