package module

import (
	"time"

	"easel/internal/platform/config"
)

// Options controls the image checker service
type Options struct {
	ContentClass   string
	ProbeTimeout   time.Duration
	UserAgent      string
	Retries        int
	RetryBase      time.Duration
	CacheTTL       time.Duration
	CacheEntries   int
	BatchSize      int
	MaxConcurrency int
	TaskTimeout    time.Duration
	CoalesceWait   time.Duration
}

// FromConfig reads with IMAGECHECK_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("IMAGECHECK_")
	return Options{
		ContentClass:   c.MayString("CONTENT_CLASS", "image/"),
		ProbeTimeout:   c.MayDuration("PROBE_TIMEOUT", 5*time.Second),
		UserAgent:      c.MayString("USER_AGENT", ""),
		Retries:        c.MayInt("RETRIES", 2),
		RetryBase:      c.MayDuration("RETRY_BASE", time.Second),
		CacheTTL:       c.MayDuration("CACHE_TTL", 5*time.Minute),
		CacheEntries:   c.MayInt("CACHE_ENTRIES", 10_000),
		BatchSize:      c.MayInt("BATCH_SIZE", 10),
		MaxConcurrency: c.MayInt("MAX_CONCURRENCY", 10),
		TaskTimeout:    c.MayDuration("TASK_TIMEOUT", 30*time.Second),
		CoalesceWait:   c.MayDuration("COALESCE_WAIT", 25*time.Millisecond),
	}
}
