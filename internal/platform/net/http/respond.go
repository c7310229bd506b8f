// Package http carries the server, the router seam and the JSON response
// writers the modules answer through
package http

import (
	"encoding/json"
	nethttp "net/http"

	pnet "easel/internal/platform/net"
)

// Envelope aliases the shared wire form so handlers, swagger annotations and
// tests all name one body shape
type Envelope = pnet.Wire

// JSON writes body as application/json under the given status
func JSON(w nethttp.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Response carries what a return-style handler decided: a status, a body
// (errors allowed) and optional extra headers
type Response struct {
	Status int
	Body   any
	Header nethttp.Header
}

// Handle lifts a Response-returning handler into a stdlib HandlerFunc
func Handle(fn func(r *nethttp.Request) Response) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		fn(r).write(w, r)
	}
}

func (resp Response) write(w nethttp.ResponseWriter, r *nethttp.Request) {
	dst := w.Header()
	for k, vals := range resp.Header {
		dst[k] = append(dst[k], vals...)
	}

	// 204 goes out bare, an envelope would violate the status
	if resp.Status == nethttp.StatusNoContent {
		w.WriteHeader(nethttp.StatusNoContent)
		return
	}

	rid := pnet.RequestID(r.Context())

	var status int
	var wire pnet.Wire
	if failure, ok := resp.Body.(error); ok && failure != nil {
		// an error body picks its own status, whatever the handler set
		status, wire = pnet.Error(failure, rid)
	} else {
		s := resp.Status
		if s == 0 {
			s = nethttp.StatusOK
		}
		status, wire = pnet.Reply(s, resp.Body, rid)
	}
	JSON(w, status, wire)
}

// OK wraps data in a plain 200 response
func OK(data any) Response { return Response{Status: nethttp.StatusOK, Body: data} }

// Error builds a response whose status and envelope come from the error
func Error(err error) Response { return Response{Body: err} }
