// Package net carries the wire envelope and the request id context helpers
// shared by every transport layer
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithRequest stamps id onto ctx under the key chi's middleware reads, so
// chimw.GetReqID and our RequestID agree on the value. Empty ids are ignored
func WithRequest(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, id)
}

// RequestID reports the request id on ctx, empty when none was stamped
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}
