// Package service implements the image checker workflows
package service

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"easel/internal/adapters/imagehost"
	"easel/internal/modkit"
	"easel/internal/platform/batch"
	"easel/internal/platform/cache"
	perr "easel/internal/platform/errors"
	"easel/internal/platform/fanout"
	"easel/internal/platform/logger"
	"easel/internal/platform/sem"

	dom "easel/internal/services/imagecheck/domain"
)

// VerdictCacheName is the named cache holding validation outcomes
const VerdictCacheName = "image-verdicts"

const (
	defaultContentClass = "image/"
	defaultRetryBase    = time.Second
	defaultCacheTTL     = 5 * time.Minute
	defaultCacheEntries = 10_000
	defaultBatchSize    = 10
	defaultCoalesceWait = 25 * time.Millisecond
)

// Service is the checker surface plus its counters
type Service interface {
	dom.CheckerPort
	dom.StatsPort
}

// Config controls the checker
type Config struct {
	// ContentClass is the Content-Type prefix a valid resource must declare
	ContentClass string

	// Retries is how many extra probe attempts a transient failure earns
	Retries int

	// RetryBase scales the linear backoff: attempt n sleeps RetryBase * n
	RetryBase time.Duration

	// CacheTTL bounds how long any verdict, valid or not, is reused
	CacheTTL time.Duration

	// CacheEntries caps the verdict cache
	CacheEntries int

	// BatchSize partitions ValidateMany input
	BatchSize int

	// MaxConcurrency bounds probes in flight across all callers
	MaxConcurrency int

	// TaskTimeout is the per-url deadline inside ValidateMany
	TaskTimeout time.Duration

	// CoalesceWait is how long duplicate misses pool before one probe runs
	CoalesceWait time.Duration

	// ProbeTimeout and UserAgent configure the default prober
	ProbeTimeout time.Duration
	UserAgent    string

	// Prober overrides the default imagehost client, mainly for tests
	Prober dom.ProberPort
}

func (c Config) withDefaults() Config {
	if c.ContentClass == "" {
		c.ContentClass = defaultContentClass
	}
	c.ContentClass = strings.ToLower(c.ContentClass)
	if c.Retries < 0 {
		c.Retries = 0
	}
	if c.RetryBase <= 0 {
		c.RetryBase = defaultRetryBase
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = defaultCacheTTL
	}
	if c.CacheEntries <= 0 {
		c.CacheEntries = defaultCacheEntries
	}
	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = fanout.DefaultMaxConcurrency
	}
	if c.CoalesceWait <= 0 {
		c.CoalesceWait = defaultCoalesceWait
	}
	return c
}

// Svc implements the image checker service
type Svc struct {
	cfg     Config
	prober  dom.ProberPort
	verdict *cache.Cache[dom.Verdict]
	flights *batch.Coalescer[string, dom.Verdict]
	lim     *sem.Limiter
	log     logger.Logger

	checks        atomic.Uint64
	cacheHits     atomic.Uint64
	probes        atomic.Uint64
	probeFailures atomic.Uint64

	now   func() time.Time
	sleep func(time.Duration)
}

// New constructs the service. The verdict cache registers on deps.Caches so
// the sweep runner and the stats API can see it; a nil registry gets a
// private one
func New(deps modkit.Deps, cfg Config) *Svc {
	cfg = cfg.withDefaults()

	reg := deps.Caches
	if reg == nil {
		reg = cache.NewRegistry()
	}
	vc, err := cache.Create[dom.Verdict](reg, VerdictCacheName, cache.Policy{
		MaxEntries: cfg.CacheEntries,
		TTL:        cfg.CacheTTL,
		Eviction:   cache.EvictLRU,
	})
	if err != nil {
		panic("imagecheck.Service verdict cache: " + err.Error())
	}

	prober := cfg.Prober
	if prober == nil {
		prober = imagehost.NewClient(imagehost.Options{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.ProbeTimeout,
		})
	}

	s := &Svc{
		cfg:     cfg,
		prober:  prober,
		verdict: vc,
		lim:     sem.New(cfg.MaxConcurrency),
		log:     *logger.Named("imagecheck"),
		now:     time.Now,
		sleep:   time.Sleep,
	}
	s.flights = batch.New(s.resolveBatch, batch.Options{
		MaxSize: cfg.BatchSize,
		MaxWait: cfg.CoalesceWait,
	})
	return s
}

// IsValid reports whether url points at a live resource of the expected
// content class. Outcomes are cached either way; a check that cannot be
// resolved reads as invalid
func (s *Svc) IsValid(ctx context.Context, url string) bool {
	v, err := s.resolve(ctx, url)
	if err != nil {
		s.log.Warn().Err(err).Str("url", url).Msg("image check unresolved")
		return false
	}
	return v.Valid
}

// resolve answers from the verdict cache or coalesces the miss with any
// concurrent misses for the same url
func (s *Svc) resolve(ctx context.Context, url string) (dom.Verdict, error) {
	s.checks.Add(1)
	if v, ok := s.verdict.Get(url); ok {
		s.cacheHits.Add(1)
		return v, nil
	}
	return s.flights.Add(ctx, url, url)
}

// resolveBatch probes once per batch. Every item in a batch carries the
// same url (the batch key), so a single probe settles all of them
func (s *Svc) resolveBatch(ctx context.Context, urls []string) ([]dom.Verdict, error) {
	v := dom.Verdict{Valid: s.probe(ctx, urls[0]), CheckedAt: s.now()}
	s.verdict.Set(urls[0], v)

	out := make([]dom.Verdict, len(urls))
	for i := range out {
		out[i] = v
	}
	return out, nil
}

// probe runs the metadata check with linear backoff between attempts. Only
// transient failures retry; a completed probe with a bad status or content
// type is final
func (s *Svc) probe(ctx context.Context, url string) bool {
	for attempt := 0; ; attempt++ {
		s.probes.Add(1)
		status, ctype, err := s.prober.Probe(ctx, url)
		if err == nil {
			return status >= 200 && status < 300 &&
				strings.HasPrefix(strings.ToLower(ctype), s.cfg.ContentClass)
		}
		if attempt >= s.cfg.Retries || !perr.Retryable(err) {
			s.probeFailures.Add(1)
			s.log.Warn().Err(err).Str("url", url).Int("attempts", attempt+1).Msg("image probe gave up")
			return false
		}
		s.sleep(s.cfg.RetryBase * time.Duration(attempt+1))
	}
}

// ValidateMany checks every url and returns a verdict keyed by url. Input is
// worked in fixed size batches, each fanned out best effort under the shared
// probe limiter; a url whose check failed or timed out reads as false
func (s *Svc) ValidateMany(ctx context.Context, urls []string) map[string]bool {
	out := make(map[string]bool, len(urls))
	for start := 0; start < len(urls); start += s.cfg.BatchSize {
		end := start + s.cfg.BatchSize
		if end > len(urls) {
			end = len(urls)
		}
		chunk := urls[start:end]

		tasks := make([]fanout.Task[bool], len(chunk))
		for i, u := range chunk {
			tasks[i] = func(tctx context.Context) (bool, error) {
				v, err := s.resolve(tctx, u)
				if err != nil {
					return false, err
				}
				return v.Valid, nil
			}
		}

		outs, _ := fanout.RunOutcomes(ctx, tasks, fanout.Options{
			Policy:      fanout.BestEffort,
			Limiter:     s.lim,
			TaskTimeout: s.cfg.TaskTimeout,
		})
		for i, oc := range outs {
			out[chunk[i]] = oc.Status == fanout.StatusCompleted && oc.Value
		}
	}
	return out
}

// FilterValid keeps only candidates whose image URL validates, preserving
// relative order within and across batches
func (s *Svc) FilterValid(ctx context.Context, items []dom.Candidate) []dom.Candidate {
	return dom.Filter(ctx, s, items, func(c dom.Candidate) string { return c.ImageURL })
}

// ValidatorStats returns a snapshot of the checker's counters
func (s *Svc) ValidatorStats() dom.ValidatorStats {
	groups, items := s.flights.Depth()
	return dom.ValidatorStats{
		Checks:        s.checks.Load(),
		CacheHits:     s.cacheHits.Load(),
		Probes:        s.probes.Load(),
		ProbeFailures: s.probeFailures.Load(),
		PendingGroups: groups,
		PendingItems:  items,
	}
}

// Close drains any in-flight coalesced checks and stops accepting new ones
func (s *Svc) Close() {
	s.flights.Close()
}
