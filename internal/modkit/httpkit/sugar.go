package httpkit

import "net/http"

// One-line route registration for the verbs modules actually mount.
// Body-less verbs go through Call, PostJSON binds the body first.

// Get registers a body-less handler under GET
func Get(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Get(path, Call(fn))
}

// Post registers a body-less handler under POST
func Post(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Post(path, Call(fn))
}

// Delete registers a body-less handler under DELETE. The target is named
// by path or query, any request body is ignored
func Delete(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Delete(path, Call(fn))
}

// PostJSON binds the request body into T before the handler runs
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(fn))
}
