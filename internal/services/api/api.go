// Package api assembles the easel HTTP surface: the meta, stats and images
// modules mounted under one versioned prefix with a shared middleware stack
package api

import (
	"time"

	"easel/internal/platform/cache"
	"easel/internal/platform/config"
	"easel/internal/platform/logger"
	phttp "easel/internal/platform/net/http"
	"easel/internal/platform/net/middleware"
	"easel/internal/platform/reqctx"

	"easel/internal/modkit"
	"easel/internal/modkit/httpkit"
	"easel/internal/modkit/module"
	"easel/internal/modkit/swaggerkit"

	imagesmod "easel/internal/services/api/images/module"
	metamod "easel/internal/services/api/meta/module"
	statsmod "easel/internal/services/api/stats/module"

	// the checker owns the probe lifecycle and publishes the ports the
	// images and stats modules consume
	checkermod "easel/internal/services/imagecheck/module"
)

// Options carries everything Mount needs from the bootstrap
type Options struct {
	Config   config.Conf
	Logger   *logger.Logger
	Caches   *cache.Registry
	Tracker  *reqctx.Registry
	Checker  *checkermod.Module
	Swagger  bool
	Profiler bool

	// MaxInflight caps concurrently served requests at the edge, 0 disables.
	// Requests past the cap wait in a small backlog before getting a 503
	MaxInflight int
}

// Mount wires the module set onto r under the versioned prefix
func Mount(r phttp.Router, opt Options) {
	log := opt.Logger
	if log == nil {
		log = logger.Named("api")
	}

	// load balancer probe at the root, outside the versioned prefix and
	// ahead of the module stack
	r.Use(middleware.Heartbeat("/ping"))

	// every module sees the same registries
	deps := modkit.Deps{
		Cfg:     opt.Config,
		Caches:  opt.Caches,
		Tracker: opt.Tracker,
	}

	// the checker module is built in main; pull its ports out and hand them
	// to the modules that front them over HTTP
	ic := module.MustPortsOf[checkermod.Ports](opt.Checker)

	images := imagesmod.New(
		deps,
		modkit.WithPorts(imagesmod.Ports{
			Checker: ic.Checker,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		statsmod.New(deps, modkit.WithPorts(statsmod.Ports{
			Validator: ic.Stats,
		})),
		opt.Checker, // listed so its ports land in the registry with the rest
		images,
	}

	// common stack plus in flight request tracking; CORS origins come from
	// config so the dashboard host can be pinned per environment
	origins := opt.Config.MayCSV("CORS_ORIGINS", nil)
	mw := append(httpkit.CommonStack(origins), middleware.Track(opt.Tracker))
	if opt.MaxInflight > 0 {
		mw = append(mw, middleware.ThrottleBacklog(opt.MaxInflight, opt.MaxInflight, 5*time.Second))
	}

	httpkit.MountAPIV1(r, mw, func(api httpkit.Router) {
		// operational surfaces live outside the versioned prefix
		swaggerkit.Mount(r, opt.Swagger)
		phttp.MountProfiler(r, "/debug", opt.Profiler)

		for _, m := range mods {
			// ports go into the registry first so cross-module lookups see
			// every sibling by the time routes run
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	log.Info().Strs("modules", module.Names()).Msg("api mounted")
}
