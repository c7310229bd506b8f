// Package module wires the stats module: cache counters, tracker snapshots
// and validator totals served under /stats
package module

import (
	modkit "easel/internal/modkit"
	"easel/internal/modkit/httpkit"
	str "easel/internal/platform/strings"

	shttp "easel/internal/services/api/stats/http"
	statssvc "easel/internal/services/api/stats/service"
	icdom "easel/internal/services/imagecheck/domain"
)

// Ports declares what stats needs injected: the validator counters port
type Ports struct {
	Validator icdom.StatsPort
}

// Module serves the stats endpoints and republishes the service as ports
type Module struct {
	built modkit.Built
	ports adaptStatsPort
}

// New builds the stats service over the shared registries and mounts it
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	base := []modkit.Option{modkit.WithName("stats"), modkit.WithPrefix("/stats")}
	b := modkit.Build(append(base, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	svc := statssvc.New(deps.Caches, deps.Tracker, injected.Validator)

	caller := b.Register
	b.Register = func(r httpkit.Router) {
		shttp.Register(r, svc)
		caller(r)
	}

	return &Module{built: b, ports: adaptStatsPort{svc: svc}}
}

// MountRoutes hangs the stats routes under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.built.Prefix, m.built.Mw, func(rr httpkit.Router) {
		m.built.Register(m.built.Subrouter(rr))
	})
}

// Name reports the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "stats") }
