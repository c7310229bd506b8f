package module

import (
	"context"

	"easel/internal/services/api/stats/domain"
	statssvc "easel/internal/services/api/stats/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptStatsPort struct{ svc statssvc.Service }

// Caches returns counters for every named cache
func (a adaptStatsPort) Caches(ctx context.Context) ([]domain.CacheRow, error) {
	return a.svc.Caches(ctx)
}

// ClearCache wipes one named cache
func (a adaptStatsPort) ClearCache(ctx context.Context, name string) (domain.ClearOutput, error) {
	return a.svc.ClearCache(ctx, name)
}

// PurgeCaches sweeps expired entries out of every named cache
func (a adaptStatsPort) PurgeCaches(ctx context.Context) (domain.PurgeOutput, error) {
	return a.svc.PurgeCaches(ctx)
}

// Requests returns the in flight request tracker snapshot
func (a adaptStatsPort) Requests(ctx context.Context, limit int) (domain.RequestsOutput, error) {
	return a.svc.Requests(ctx, limit)
}

// Validator returns the image checker counters
func (a adaptStatsPort) Validator(ctx context.Context) (domain.ValidatorOutput, error) {
	return a.svc.Validator(ctx)
}
