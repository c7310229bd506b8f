package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"easel/internal/modkit"
	"easel/internal/platform/cache"
	perr "easel/internal/platform/errors"
	"easel/internal/platform/testkit"

	dom "easel/internal/services/imagecheck/domain"
)

// fakeProber scripts probe outcomes per url and records every call
type fakeProber struct {
	mu    sync.Mutex
	calls []string
	fn    func(url string) (int, string, error)
}

func (f *fakeProber) Probe(_ context.Context, url string) (int, string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()
	return f.fn(url)
}

func (f *fakeProber) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestSvc(t *testing.T, fp *fakeProber, cfg Config) *Svc {
	t.Helper()
	cfg.Prober = fp
	if cfg.CoalesceWait == 0 {
		cfg.CoalesceWait = 5 * time.Millisecond
	}
	s := New(modkit.Deps{}, cfg)
	s.sleep = func(time.Duration) {}
	t.Cleanup(s.Close)
	return s
}

func TestIsValid_CachesVerdict(t *testing.T) {
	fp := &fakeProber{fn: func(string) (int, string, error) {
		return 200, "image/png", nil
	}}
	s := newTestSvc(t, fp, Config{})

	ctx := context.Background()
	if !s.IsValid(ctx, "https://img.test/a.png") {
		t.Fatal("expected valid")
	}
	if !s.IsValid(ctx, "https://img.test/a.png") {
		t.Fatal("expected valid on second check")
	}
	if got := fp.count(); got != 1 {
		t.Fatalf("probe count = %d, want 1 (second check should hit the cache)", got)
	}

	st := s.ValidatorStats()
	if st.Checks != 2 || st.CacheHits != 1 || st.Probes != 1 {
		t.Fatalf("stats = %+v, want checks=2 hits=1 probes=1", st)
	}
}

func TestIsValid_ContentClass(t *testing.T) {
	cases := []struct {
		name   string
		status int
		ctype  string
		want   bool
	}{
		{"image ok", 200, "image/png", true},
		{"partial content from ranged fallback", 206, "image/jpeg", true},
		{"uppercase header", 200, "Image/WebP", true},
		{"wrong class", 200, "text/html", false},
		{"not found", 404, "text/plain", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fp := &fakeProber{fn: func(string) (int, string, error) {
				return tc.status, tc.ctype, nil
			}}
			s := newTestSvc(t, fp, Config{})
			if got := s.IsValid(context.Background(), "https://img.test/x"); got != tc.want {
				t.Fatalf("IsValid = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestProbe_RetriesTransientThenSucceeds(t *testing.T) {
	var n atomic.Int32
	fp := &fakeProber{fn: func(string) (int, string, error) {
		if n.Add(1) == 1 {
			return 0, "", perr.Newf(perr.ErrorCodeUnavailable, "flaky host")
		}
		return 200, "image/gif", nil
	}}
	s := newTestSvc(t, fp, Config{Retries: 2, RetryBase: 100 * time.Millisecond})

	var slept []time.Duration
	s.sleep = func(d time.Duration) { slept = append(slept, d) }

	if !s.IsValid(context.Background(), "https://img.test/flaky.gif") {
		t.Fatal("expected valid after retry")
	}
	if got := fp.count(); got != 2 {
		t.Fatalf("probe count = %d, want 2", got)
	}
	if len(slept) != 1 || slept[0] != 100*time.Millisecond {
		t.Fatalf("sleeps = %v, want one 100ms backoff", slept)
	}
	if st := s.ValidatorStats(); st.ProbeFailures != 0 {
		t.Fatalf("ProbeFailures = %d, want 0", st.ProbeFailures)
	}
}

func TestProbe_NoRetryOnPermanentError(t *testing.T) {
	fp := &fakeProber{fn: func(string) (int, string, error) {
		return 0, "", perr.Newf(perr.ErrorCodeInvalidArgument, "bad url")
	}}
	s := newTestSvc(t, fp, Config{Retries: 5})

	if s.IsValid(context.Background(), "::notaurl") {
		t.Fatal("expected invalid")
	}
	if got := fp.count(); got != 1 {
		t.Fatalf("probe count = %d, want 1 (permanent errors must not retry)", got)
	}
}

func TestProbe_GivesUpAfterRetries(t *testing.T) {
	fp := &fakeProber{fn: func(string) (int, string, error) {
		return 0, "", perr.Newf(perr.ErrorCodeUnavailable, "still down")
	}}
	s := newTestSvc(t, fp, Config{Retries: 2, RetryBase: 50 * time.Millisecond})

	var slept []time.Duration
	s.sleep = func(d time.Duration) { slept = append(slept, d) }

	if s.IsValid(context.Background(), "https://img.test/dead.png") {
		t.Fatal("expected invalid after exhausting retries")
	}
	if got := fp.count(); got != 3 {
		t.Fatalf("probe count = %d, want 3 (1 + 2 retries)", got)
	}
	want := []time.Duration{50 * time.Millisecond, 100 * time.Millisecond}
	if len(slept) != len(want) || slept[0] != want[0] || slept[1] != want[1] {
		t.Fatalf("sleeps = %v, want %v (linear backoff)", slept, want)
	}
	if st := s.ValidatorStats(); st.ProbeFailures != 1 {
		t.Fatalf("ProbeFailures = %d, want 1", st.ProbeFailures)
	}
}

func TestExhaustedRetriesCacheInvalid(t *testing.T) {
	var n atomic.Int32
	fp := &fakeProber{fn: func(string) (int, string, error) {
		if n.Add(1) == 1 {
			return 0, "", perr.Newf(perr.ErrorCodeUnavailable, "down")
		}
		return 200, "image/png", nil
	}}
	s := newTestSvc(t, fp, Config{Retries: 0})

	ctx := context.Background()
	if s.IsValid(ctx, "https://img.test/b.png") {
		t.Fatal("first check should fail")
	}
	// the failed outcome was cached as invalid, so a re-check inside the TTL
	// window reuses it rather than probing again
	if s.IsValid(ctx, "https://img.test/b.png") {
		t.Fatal("second check should reuse the cached invalid verdict")
	}
	if got := fp.count(); got != 1 {
		t.Fatalf("probe count = %d, want 1", got)
	}
}

func TestValidateMany_EveryURLKeyed(t *testing.T) {
	fp := &fakeProber{fn: func(url string) (int, string, error) {
		switch url {
		case "https://img.test/bad":
			return 200, "text/html", nil
		case "https://img.test/down":
			return 0, "", perr.Newf(perr.ErrorCodeUnavailable, "down")
		default:
			return 200, "image/png", nil
		}
	}}
	s := newTestSvc(t, fp, Config{BatchSize: 2})

	urls := []string{
		"https://img.test/a",
		"https://img.test/bad",
		"https://img.test/down",
		"https://img.test/b",
		"https://img.test/c",
	}
	got := s.ValidateMany(context.Background(), urls)

	if len(got) != len(urls) {
		t.Fatalf("result has %d keys, want %d", len(got), len(urls))
	}
	for _, u := range urls {
		if _, ok := got[u]; !ok {
			t.Fatalf("missing verdict for %s", u)
		}
	}
	if !got["https://img.test/a"] || !got["https://img.test/b"] || !got["https://img.test/c"] {
		t.Fatalf("expected a, b, c valid: %v", got)
	}
	if got["https://img.test/bad"] || got["https://img.test/down"] {
		t.Fatalf("expected bad and down invalid: %v", got)
	}
}

func TestValidateMany_Empty(t *testing.T) {
	fp := &fakeProber{fn: func(string) (int, string, error) {
		return 200, "image/png", nil
	}}
	s := newTestSvc(t, fp, Config{})

	got := s.ValidateMany(context.Background(), nil)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
	if fp.count() != 0 {
		t.Fatal("no probes expected for empty input")
	}
}

func TestFilterValid_PreservesOrder(t *testing.T) {
	fp := &fakeProber{fn: func(url string) (int, string, error) {
		if url == "https://img.test/2" {
			return 410, "image/png", nil
		}
		return 200, "image/png", nil
	}}
	s := newTestSvc(t, fp, Config{BatchSize: 2})

	in := []dom.Candidate{
		{ID: "one", ImageURL: "https://img.test/1"},
		{ID: "two", ImageURL: "https://img.test/2"},
		{ID: "three", ImageURL: "https://img.test/3"},
		{ID: "four", ImageURL: "https://img.test/4"},
	}
	out := s.FilterValid(context.Background(), in)

	if len(out) != 3 {
		t.Fatalf("kept %d candidates, want 3", len(out))
	}
	for i, wantID := range []string{"one", "three", "four"} {
		if out[i].ID != wantID {
			t.Fatalf("out[%d].ID = %s, want %s", i, out[i].ID, wantID)
		}
	}
}

func TestFilterValid_Empty(t *testing.T) {
	fp := &fakeProber{fn: func(string) (int, string, error) {
		return 200, "image/png", nil
	}}
	s := newTestSvc(t, fp, Config{})

	out := s.FilterValid(context.Background(), nil)
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", out)
	}
}

func TestConcurrentMissesShareOneProbe(t *testing.T) {
	fp := &fakeProber{fn: func(string) (int, string, error) {
		return 200, "image/png", nil
	}}
	s := newTestSvc(t, fp, Config{CoalesceWait: 50 * time.Millisecond})

	const callers = 8
	var wg sync.WaitGroup
	results := make([]bool, callers)
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.IsValid(context.Background(), "https://img.test/hot.png")
		}()
	}
	wg.Wait()

	for i, ok := range results {
		if !ok {
			t.Fatalf("caller %d got invalid", i)
		}
	}
	if got := fp.count(); got != 1 {
		t.Fatalf("probe count = %d, want 1 (concurrent misses must coalesce)", got)
	}
}

func TestVerdictExpiryTriggersReprobe(t *testing.T) {
	fp := &fakeProber{fn: func(string) (int, string, error) {
		return 200, "image/png", nil
	}}
	s := newTestSvc(t, fp, Config{CacheTTL: 20 * time.Millisecond})

	ctx := context.Background()
	s.IsValid(ctx, "https://img.test/ttl.png")
	time.Sleep(30 * time.Millisecond)
	s.IsValid(ctx, "https://img.test/ttl.png")

	if got := fp.count(); got != 2 {
		t.Fatalf("probe count = %d, want 2 (verdict expired between checks)", got)
	}
}

func TestCloseRejectsNewChecks(t *testing.T) {
	fp := &fakeProber{fn: func(string) (int, string, error) {
		return 200, "image/png", nil
	}}
	s := newTestSvc(t, fp, Config{})
	s.Close()

	if s.IsValid(context.Background(), "https://img.test/late.png") {
		t.Fatal("checks after Close should read invalid")
	}
	if fp.count() != 0 {
		t.Fatal("no probe expected after Close")
	}
}

func TestNewPanicsOnDuplicateCache(t *testing.T) {
	reg := cache.NewRegistry()
	fp := &fakeProber{fn: func(string) (int, string, error) {
		return 200, "image/png", nil
	}}
	s := New(modkit.Deps{Caches: reg}, Config{Prober: fp})
	t.Cleanup(s.Close)

	// second service on the same registry collides on the verdict cache name
	testkit.MustPanic(t, func() {
		New(modkit.Deps{Caches: reg}, Config{Prober: fp})
	})
}
