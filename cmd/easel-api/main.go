// @title         Easel API
// @version       0.1.0
// @description   Image validation, named caches, and runtime introspection

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"easel/internal/core/version"
	"easel/internal/modkit"
	"easel/internal/platform/cache"
	"easel/internal/platform/config"
	"easel/internal/platform/logger"
	phttp "easel/internal/platform/net/http"
	"easel/internal/platform/reqctx"
	"easel/internal/platform/sweep"

	"easel/internal/services/api"
	checkermod "easel/internal/services/imagecheck/module"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	runCfg := root.Prefix("RUNTIME_") // sweep cadences live under RUNTIME_*

	// bring up logging early
	l := logger.Get()
	bi := version.Info()
	l.Info().Str("version", bi.Version).Str("commit", bi.Commit).Msg("starting easel-api")

	// shared named caches; two are pre registered for the response and
	// static asset paths, the checker adds its own verdict cache
	caches := cache.NewRegistry()
	mustCache(caches, "api-responses", cache.Policy{
		MaxEntries: 1000,
		TTL:        5 * time.Minute,
		Eviction:   cache.EvictLRU,
	})
	mustCache(caches, "static-assets", cache.Policy{
		MaxEntries: 500,
		TTL:        time.Hour,
		Eviction:   cache.EvictFIFO,
	})

	// in flight request tracker
	tracker := reqctx.New()

	// image checker (owns the probe client, verdict cache, and coalescer);
	// reads IMAGECHECK_* from the root config
	checker := checkermod.New(
		modkit.Deps{Cfg: root, Caches: caches, Tracker: tracker},
		checkermod.Options{},
	)
	defer checker.Close()

	// janitorial sweeps owned by this process, stopped on the way out
	sweeps := sweep.New()
	sweeps.Every(runCfg.MayDuration("CACHE_SWEEP", 5*time.Minute), "cache-purge", func(context.Context) {
		if n := caches.PurgeExpired(); n > 0 {
			l.Debug().Int("purged", n).Msg("cache sweep")
		}
	})
	staleAfter := runCfg.MayDuration("REQUEST_STALE_AFTER", 10*time.Minute)
	sweeps.Every(runCfg.MayDuration("REQUEST_SWEEP", 5*time.Minute), "request-reap", func(context.Context) {
		if n := tracker.PurgeStale(staleAfter); n > 0 {
			l.Warn().Int("reaped", n).Msg("reaped stale request records")
		}
	})
	sweeps.Start(context.Background())
	defer sweeps.Stop()

	// http server; listen address comes from the CORE_API_ view
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:      apiCfg,
			Logger:      l,
			Caches:      caches,
			Tracker:     tracker,
			Checker:     checker,
			Swagger:     apiCfg.MayBool("SWAGGER", true),
			Profiler:    apiCfg.MayBool("PROFILER", true),
			MaxInflight: apiCfg.MayInt("MAX_INFLIGHT", 0),
		},
	)

	// run until SIGINT/SIGTERM; the deferred closes run after a clean stop
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

// mustCache registers a named byte cache or aborts startup
func mustCache(r *cache.Registry, name string, pol cache.Policy) {
	if _, err := cache.Create[[]byte](r, name, pol); err != nil {
		logger.Get().Panic().Err(err).Str("cache", name).Msg("cache registration failed")
	}
}
