package http

import "net/http"

// Handler is the signature every route in the app is written against
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the mounting seam between modules and whatever mux backs the
// server. Verb helpers register one pattern each, Route and Group nest
// scopes, Mux hands the assembled tree back as a stdlib handler
type Router interface {
	Use(mw ...func(http.Handler) http.Handler)
	Route(pattern string, fn func(Router))
	Group(fn func(Router))
	Handle(pattern string, h http.Handler)

	Get(pattern string, h Handler)
	Post(pattern string, h Handler)
	Put(pattern string, h Handler)
	Patch(pattern string, h Handler)
	Delete(pattern string, h Handler)
	Head(pattern string, h Handler)
	Options(pattern string, h Handler)

	Mux() http.Handler
}
