// Package http serves the meta endpoints: liveness, readiness and build info
package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"easel/internal/core/version"
	"easel/internal/modkit/httpkit"
	"easel/internal/modkit/module"
	"easel/internal/platform/cache"
	"easel/internal/platform/reqctx"
)

// Deps carries what the probes inspect
type Deps struct {
	Service string
	Started time.Time
	Caches  *cache.Registry
	Tracker *reqctx.Registry
}

type handler struct {
	d Deps
}

// Register hangs the meta endpoints on r
func Register(r httpkit.Router, deps Deps) {
	h := &handler{d: deps}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/info", h.info)
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status  string `json:"status"  example:"ok"`
	Service string `json:"service" example:"easel-api"`
	Started string `json:"started" example:"2026-08-01T13:00:00Z"`
	Now     string `json:"now"     example:"2026-08-01T13:05:00Z"`
}

// @Summary Liveness check
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse "ok"
// @Router /meta/health [get]
func (h *handler) health(_ *http.Request) (any, error) {
	return HealthResponse{
		Status:  "ok",
		Service: h.d.Service,
		Started: stamp(h.d.Started),
		Now:     stamp(time.Now()),
	}, nil
}

// Check reports one dependency
type Check struct {
	Name   string `json:"name"   example:"caches"`
	Status string `json:"status" example:"ok"` // ok or skipped
	Detail string `json:"detail,omitempty" example:"3 registered"`
}

// ReadyResponse rolls the per dependency checks into one verdict
type ReadyResponse struct {
	Status string  `json:"status" example:"ok"` // ok or degraded
	Checks []Check `json:"checks"`
	Now    string  `json:"now"    example:"2026-08-01T13:05:00Z"`
}

// @Summary Readiness probe over the wired dependencies
// @Tags Meta
// @Produce json
// @Success 200 type ReadyResponse "readiness summary"
// @Router /meta/ready [get]
func (h *handler) ready(_ *http.Request) (any, error) {
	checks := make([]Check, 0, 3)

	if reg := h.d.Caches; reg != nil {
		checks = append(checks, Check{
			Name:   "caches",
			Status: "ok",
			Detail: fmt.Sprintf("%d registered", len(reg.Names())),
		})
	} else {
		checks = append(checks, Check{Name: "caches", Status: "skipped"})
	}

	if tr := h.d.Tracker; tr != nil {
		checks = append(checks, Check{
			Name:   "tracker",
			Status: "ok",
			Detail: fmt.Sprintf("%d active", tr.Active()),
		})
	} else {
		checks = append(checks, Check{Name: "tracker", Status: "skipped"})
	}

	// bootstrap publishes every mounted module's ports; an empty list means
	// the process is still coming up
	if names := module.Names(); len(names) > 0 {
		checks = append(checks, Check{
			Name:   "modules",
			Status: "ok",
			Detail: strings.Join(names, " "),
		})
	} else {
		checks = append(checks, Check{Name: "modules", Status: "skipped"})
	}

	status := "ok"
	for _, c := range checks {
		if c.Status != "ok" {
			status = "degraded"
			break
		}
	}

	return ReadyResponse{Status: status, Checks: checks, Now: stamp(time.Now())}, nil
}

// @Summary Build identity
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo "build identity"
// @Router /meta/version [get]
func (h *handler) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// InfoResponse names the process and its uptime
type InfoResponse struct {
	Name    string `json:"name"    example:"easel-api"`
	Started string `json:"started" example:"2026-08-01T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"8642"`
}

// @Summary Service identity and uptime
// @Tags Meta
// @Produce json
// @Success 200 type InfoResponse "service identity"
// @Router /meta/info [get]
func (h *handler) info(_ *http.Request) (any, error) {
	return InfoResponse{
		Name:    h.d.Service,
		Started: stamp(h.d.Started),
		Uptime:  int64(time.Since(h.d.Started).Seconds()),
	}, nil
}
