// Package http provides http transport for images
package http

import (
	nethttp "net/http"

	"easel/internal/modkit/httpkit"
	perr "easel/internal/platform/errors"
	"easel/internal/services/api/images/domain"
	svc "easel/internal/services/api/images/service"
)

// Register mounts images endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// batch verdicts keyed by url
	httpkit.PostJSON[domain.ValidateInput](r, "/validate", h.validate)

	// drop candidates with dead or non image urls
	httpkit.PostJSON[domain.FilterInput](r, "/filter", h.filter)

	// single url lookup
	httpkit.Get(r, "/status", h.status)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /images/validate Images imagesValidate
// @Summary Validate a batch of image URLs
// @Tags Images
// @Accept json
// @Produce json
// @Param payload body domain.ValidateInput true "URLs to check"
// @Success 200 {object} domain.ValidateOutput "ok"
// @Router /images/validate [post]
func (h *handlers) validate(r *nethttp.Request, in domain.ValidateInput) (any, error) {
	return h.svc.Validate(r.Context(), in)
}

// swagger:route POST /images/filter Images imagesFilter
// @Summary Filter candidates down to those with valid images
// @Tags Images
// @Accept json
// @Produce json
// @Param payload body domain.FilterInput true "Candidates"
// @Success 200 {object} domain.FilterOutput "ok"
// @Router /images/filter [post]
func (h *handlers) filter(r *nethttp.Request, in domain.FilterInput) (any, error) {
	return h.svc.Filter(r.Context(), in)
}

// swagger:route GET /images/status Images imagesStatus
// @Summary Verdict for a single image URL
// @Tags Images
// @Produce json
// @Param url query string true "Image URL"
// @Success 200 {object} domain.StatusOutput "ok"
// @Failure 400 {object} httpkit.Envelope "missing url"
// @Router /images/status [get]
func (h *handlers) status(r *nethttp.Request) (any, error) {
	u := r.URL.Query().Get("url")
	if u == "" {
		return nil, perr.InvalidArgf("url query parameter is required")
	}
	return h.svc.Status(r.Context(), u)
}
