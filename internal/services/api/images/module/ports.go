package module

import (
	"context"

	"easel/internal/services/api/images/domain"
	isvc "easel/internal/services/api/images/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptImagesPort exposes service methods as module ports for cross-module usage
type adaptImagesPort struct{ svc isvc.Service }

// Validate checks a batch of image URLs
func (a adaptImagesPort) Validate(ctx context.Context, in domain.ValidateInput) (domain.ValidateOutput, error) {
	return a.svc.Validate(ctx, in)
}

// Filter drops candidates whose image URL fails validation
func (a adaptImagesPort) Filter(ctx context.Context, in domain.FilterInput) (domain.FilterOutput, error) {
	return a.svc.Filter(ctx, in)
}

// Status reports the verdict for one URL
func (a adaptImagesPort) Status(ctx context.Context, url string) (domain.StatusOutput, error) {
	return a.svc.Status(ctx, url)
}
