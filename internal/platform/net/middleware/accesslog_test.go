package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"easel/internal/platform/net/middleware"
)

func serveThrough(alog middleware.Middleware, inner http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	alog(inner).ServeHTTP(rec, req)
	return rec
}

func TestAccessLogZerolog_PassesStatusAndBodyThrough(t *testing.T) {
	alog := middleware.AccessLogZerolog(middleware.AccessLogOptions{})

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = io.WriteString(w, "probe queued")
	})

	rec := serveThrough(alog, inner, "/images/validate")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	if rec.Body.String() != "probe queued" {
		t.Fatalf("body = %q, want passthrough", rec.Body.String())
	}
}

func TestAccessLogZerolog_SlowRequestStillSucceeds(t *testing.T) {
	alog := middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: time.Nanosecond})

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(80 * time.Microsecond)
		_, _ = io.WriteString(w, "late")
	})

	rec := serveThrough(alog, inner, "/stats/requests")
	if rec.Code != http.StatusOK || rec.Body.String() != "late" {
		t.Fatalf("slow mark changed the response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestAccessLogZerolog_CountsEveryWrite(t *testing.T) {
	alog := middleware.AccessLogZerolog(middleware.AccessLogOptions{})

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("chunk-a"))
		_, _ = w.Write([]byte("chunk-b"))
	})

	rec := serveThrough(alog, inner, "/stats/caches")
	if rec.Body.String() != "chunk-achunk-b" {
		t.Fatalf("body = %q, want both chunks", rec.Body.String())
	}
}

func TestAccessLogZerolog_SkippedSuffixStillServed(t *testing.T) {
	alog := middleware.AccessLogZerolog(middleware.AccessLogOptions{Skip: []string{"/meta/health"}})

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "served")
	})

	// a skipped suffix matches under any mount prefix and bypasses the
	// logging wrapper but not the handler
	rec := serveThrough(alog, inner, "/api/v1/meta/health")
	if rec.Code != http.StatusOK || rec.Body.String() != "served" {
		t.Fatalf("skipped path not served: %d %q", rec.Code, rec.Body.String())
	}

	// non matching paths still go through the logging wrapper
	rec2 := serveThrough(alog, inner, "/images/status")
	if rec2.Code != http.StatusOK || rec2.Body.String() != "served" {
		t.Fatalf("logged path not served: %d %q", rec2.Code, rec2.Body.String())
	}
}
