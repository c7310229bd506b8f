// Package module assembles the meta module: liveness, readiness and build info
package module

import (
	"time"

	modkit "easel/internal/modkit"
	"easel/internal/modkit/httpkit"
	str "easel/internal/platform/strings"

	metahttp "easel/internal/services/api/meta/http"
)

// Module mounts the meta endpoints. It consumes ports but publishes none
type Module struct {
	built modkit.Built
}

// New wires the meta module against deps. Options may remount or rename it
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	started := time.Now()

	base := []modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}
	b := modkit.Build(append(base, opts...)...)

	// readiness inspects the same registries the rest of the service runs on
	caller := b.Register
	b.Register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			Service: "easel-api",
			Started: started,
			Caches:  deps.Caches,
			Tracker: deps.Tracker,
		})
		caller(r)
	}

	return &Module{built: b}
}

// MountRoutes hangs the meta routes under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.built.Prefix, m.built.Mw, func(rr httpkit.Router) {
		m.built.Register(m.built.Subrouter(rr))
	})
}

// Name reports the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "meta") }

// Ports reports nil; meta publishes nothing for other modules to import
func (m *Module) Ports() any { return nil }
