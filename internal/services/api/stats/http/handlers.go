// Package http provides http transport for stats
package http

import (
	nethttp "net/http"
	"strconv"

	"easel/internal/modkit/httpkit"
	perr "easel/internal/platform/errors"
	svc "easel/internal/services/api/stats/service"
)

// Register mounts stats endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// per cache counters
	httpkit.Get(r, "/caches", h.caches)

	// cache admin
	httpkit.Delete(r, "/caches", h.clearCache)
	httpkit.Post(r, "/caches/purge", h.purgeCaches)

	// in flight request tracker
	httpkit.Get(r, "/requests", h.requests)

	// image checker counters
	httpkit.Get(r, "/validator", h.validator)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /stats/caches Stats statsCaches
// @Summary Counters for every named cache
// @Tags Stats
// @Produce json
// @Success 200 {array} domain.CacheRow "ok"
// @Router /stats/caches [get]
func (h *handlers) caches(r *nethttp.Request) (any, error) {
	return h.svc.Caches(r.Context())
}

// swagger:route DELETE /stats/caches Stats statsClearCache
// @Summary Clear one named cache
// @Tags Stats
// @Produce json
// @Param name query string true "Cache name"
// @Success 200 {object} domain.ClearOutput "ok"
// @Failure 404 {object} httpkit.Envelope "unknown cache"
// @Router /stats/caches [delete]
func (h *handlers) clearCache(r *nethttp.Request) (any, error) {
	name := r.URL.Query().Get("name")
	if name == "" {
		return nil, perr.InvalidArgf("name query parameter is required")
	}
	return h.svc.ClearCache(r.Context(), name)
}

// swagger:route POST /stats/caches/purge Stats statsPurgeCaches
// @Summary Sweep expired entries from every cache
// @Tags Stats
// @Produce json
// @Success 200 {object} domain.PurgeOutput "ok"
// @Router /stats/caches/purge [post]
func (h *handlers) purgeCaches(r *nethttp.Request) (any, error) {
	return h.svc.PurgeCaches(r.Context())
}

// swagger:route GET /stats/requests Stats statsRequests
// @Summary In flight request tracker snapshot
// @Tags Stats
// @Produce json
// @Param limit query int false "Max rows, oldest first" default(100)
// @Success 200 {object} domain.RequestsOutput "ok"
// @Router /stats/requests [get]
func (h *handlers) requests(r *nethttp.Request) (any, error) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, perr.InvalidArgf("limit must be a positive integer")
		}
		limit = n
	}
	return h.svc.Requests(r.Context(), limit)
}

// swagger:route GET /stats/validator Stats statsValidator
// @Summary Image checker counters
// @Tags Stats
// @Produce json
// @Success 200 {object} domain.ValidatorOutput "ok"
// @Router /stats/validator [get]
func (h *handlers) validator(r *nethttp.Request) (any, error) {
	return h.svc.Validator(r.Context())
}
