// Package service contains stats workflows
package service

import (
	"context"
	"time"

	"easel/internal/platform/cache"
	perr "easel/internal/platform/errors"
	"easel/internal/platform/reqctx"
	"easel/internal/services/api/stats/domain"
	icdom "easel/internal/services/imagecheck/domain"
)

// Service defines the stats service contract
type Service interface {
	domain.ServicePort
}

const (
	defaultRequestLimit = 100
	maxRequestLimit     = 500
)

// Svc implements the stats service over the in memory registries
type Svc struct {
	caches    *cache.Registry
	tracker   *reqctx.Registry
	validator icdom.StatsPort

	now func() time.Time
}

// New constructs a stats service
func New(caches *cache.Registry, tracker *reqctx.Registry, validator icdom.StatsPort) *Svc {
	if caches == nil {
		panic("stats.Service requires a non nil cache registry")
	}
	if tracker == nil {
		panic("stats.Service requires a non nil request tracker")
	}
	if validator == nil {
		panic("stats.Service requires a non nil validator stats port")
	}
	return &Svc{caches: caches, tracker: tracker, validator: validator, now: time.Now}
}

// Caches returns counters for every named cache, sorted by name
func (s *Svc) Caches(_ context.Context) ([]domain.CacheRow, error) {
	stats := s.caches.Stats()
	out := make([]domain.CacheRow, 0, len(stats))
	for _, name := range s.caches.Names() {
		st := stats[name]
		out = append(out, domain.CacheRow{
			Name:        st.Name,
			Size:        st.Size,
			Capacity:    st.Capacity,
			Eviction:    string(st.Eviction),
			Hits:        st.Hits,
			Misses:      st.Misses,
			Evictions:   st.Evictions,
			Expirations: st.Expirations,
		})
	}
	return out, nil
}

// ClearCache wipes the named cache and reports how many entries it held
func (s *Svc) ClearCache(_ context.Context, name string) (domain.ClearOutput, error) {
	h, ok := s.caches.Get(name)
	if !ok {
		return domain.ClearOutput{}, perr.NotFoundf("no cache named %q", name)
	}
	n := h.Len()
	h.Clear()
	return domain.ClearOutput{Name: name, Cleared: n}, nil
}

// PurgeCaches sweeps expired entries out of every named cache
func (s *Svc) PurgeCaches(_ context.Context) (domain.PurgeOutput, error) {
	return domain.PurgeOutput{Purged: s.caches.PurgeExpired()}, nil
}

// Requests returns tracker counters and the oldest in flight requests,
// oldest first, capped at limit rows
func (s *Svc) Requests(_ context.Context, limit int) (domain.RequestsOutput, error) {
	if limit <= 0 {
		limit = defaultRequestLimit
	}
	if limit > maxRequestLimit {
		limit = maxRequestLimit
	}

	st := s.tracker.Stats()
	out := domain.RequestsOutput{
		Active:   st.Active,
		Acquired: st.Acquired,
		Released: st.Released,
		Reaped:   st.Reaped,
		Requests: []domain.RequestRow{},
	}

	snap := s.tracker.Snapshot()
	if len(snap) > 0 {
		oldest := snap[0].StartedAt
		out.OldestAt = &oldest
	}
	if len(snap) > limit {
		snap = snap[:limit]
	}

	now := s.now()
	for _, e := range snap {
		out.Requests = append(out.Requests, domain.RequestRow{
			ID:        e.ID,
			StartedAt: e.StartedAt,
			AgeMs:     now.Sub(e.StartedAt).Milliseconds(),
		})
	}
	return out, nil
}

// Validator returns the image checker counters
func (s *Svc) Validator(_ context.Context) (domain.ValidatorOutput, error) {
	st := s.validator.ValidatorStats()
	return domain.ValidatorOutput{
		Checks:        st.Checks,
		CacheHits:     st.CacheHits,
		Probes:        st.Probes,
		ProbeFailures: st.ProbeFailures,
		PendingGroups: st.PendingGroups,
		PendingItems:  st.PendingItems,
	}, nil
}
