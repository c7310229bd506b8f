// Package module wires the images module: submit, verify and inspect
// image references under /images
package module

import (
	modkit "easel/internal/modkit"
	"easel/internal/modkit/httpkit"
	str "easel/internal/platform/strings"

	"easel/internal/services/api/images/domain"
	ihttp "easel/internal/services/api/images/http"
	isvc "easel/internal/services/api/images/service"
	icdom "easel/internal/services/imagecheck/domain"
)

// Ports declares what images needs injected: the checker port
type Ports struct {
	Checker icdom.CheckerPort
}

// Module serves the images endpoints and republishes the service as ports
type Module struct {
	built modkit.Built
	ports adaptImagesPort
}

// New builds the images service over the injected checker and mounts it.
// Panics when the checker port is missing; the module cannot run without it
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	base := []modkit.Option{modkit.WithName("images"), modkit.WithPrefix("/images")}
	b := modkit.Build(append(base, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Checker == nil {
		panic("images module requires the Checker port (from services/imagecheck)")
	}

	// the http_url tag backs the validate tags on this module's DTOs
	if err := httpkit.RegisterValidation("http_url", func(fl httpkit.FieldLevel) bool {
		return domain.ValidImageRef(fl.Field().String())
	}); err != nil {
		panic("images module: http_url tag registration failed: " + err.Error())
	}

	svc := isvc.New(injected.Checker)

	caller := b.Register
	b.Register = func(r httpkit.Router) {
		ihttp.Register(r, svc)
		caller(r)
	}

	return &Module{built: b, ports: adaptImagesPort{svc: svc}}
}

// MountRoutes hangs the images routes under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.built.Prefix, m.built.Mw, func(rr httpkit.Router) {
		m.built.Register(m.built.Subrouter(rr))
	})
}

// Name reports the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "images") }
