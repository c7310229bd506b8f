// Package module wires the image checker service and exposes its ports
package module

import (
	"easel/internal/modkit"
	"easel/internal/modkit/httpkit"
	"easel/internal/services/imagecheck/service"
)

// Module defines the image checker module
type Module struct {
	svc   *service.Svc
	ports Ports
}

// New constructs the image checker module with its ports
func New(deps modkit.Deps, overrides Options) *Module {
	// Load defaults, then apply non-zero overrides
	opts := FromConfig(deps.Cfg)

	if overrides.ContentClass != "" {
		opts.ContentClass = overrides.ContentClass
	}
	if overrides.ProbeTimeout != 0 {
		opts.ProbeTimeout = overrides.ProbeTimeout
	}
	if overrides.UserAgent != "" {
		opts.UserAgent = overrides.UserAgent
	}
	if overrides.Retries != 0 {
		opts.Retries = overrides.Retries
	}
	if overrides.RetryBase != 0 {
		opts.RetryBase = overrides.RetryBase
	}
	if overrides.CacheTTL != 0 {
		opts.CacheTTL = overrides.CacheTTL
	}
	if overrides.CacheEntries != 0 {
		opts.CacheEntries = overrides.CacheEntries
	}
	if overrides.BatchSize != 0 {
		opts.BatchSize = overrides.BatchSize
	}
	if overrides.MaxConcurrency != 0 {
		opts.MaxConcurrency = overrides.MaxConcurrency
	}
	if overrides.TaskTimeout != 0 {
		opts.TaskTimeout = overrides.TaskTimeout
	}
	if overrides.CoalesceWait != 0 {
		opts.CoalesceWait = overrides.CoalesceWait
	}

	svc := service.New(deps, service.Config{
		ContentClass:   opts.ContentClass,
		ProbeTimeout:   opts.ProbeTimeout,
		UserAgent:      opts.UserAgent,
		Retries:        opts.Retries,
		RetryBase:      opts.RetryBase,
		CacheTTL:       opts.CacheTTL,
		CacheEntries:   opts.CacheEntries,
		BatchSize:      opts.BatchSize,
		MaxConcurrency: opts.MaxConcurrency,
		TaskTimeout:    opts.TaskTimeout,
		CoalesceWait:   opts.CoalesceWait,
	})

	m := &Module{svc: svc}
	m.ports = Ports{
		Checker: svc, // svc implements CheckerPort
		Stats:   svc, // svc also implements StatsPort
	}
	return m
}

// Ports returns the module ports (Checker, Stats)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "imagecheck" }

// MountRoutes is a no-op, the checker has no HTTP surface of its own
func (m *Module) MountRoutes(_ httpkit.Router) {}

// Close drains coalesced checks in flight and stops accepting new ones
func (m *Module) Close() { m.svc.Close() }
