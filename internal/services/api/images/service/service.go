// Package service adapts the image checker ports to the images API contracts
package service

import (
	"context"

	"easel/internal/services/api/images/domain"
	icdom "easel/internal/services/imagecheck/domain"
)

// Service is the interface implemented by the images service
type Service interface {
	Validate(ctx context.Context, in domain.ValidateInput) (domain.ValidateOutput, error)
	Filter(ctx context.Context, in domain.FilterInput) (domain.FilterOutput, error)
	Status(ctx context.Context, url string) (domain.StatusOutput, error)
}

type svc struct {
	checker icdom.CheckerPort
}

// New constructs the images service over the injected checker port
func New(checker icdom.CheckerPort) Service {
	if checker == nil {
		panic("images service requires a non nil checker port")
	}
	return &svc{checker: checker}
}

func (s *svc) Validate(ctx context.Context, in domain.ValidateInput) (domain.ValidateOutput, error) {
	res := s.checker.ValidateMany(ctx, in.URLs)
	out := domain.ValidateOutput{Results: res}
	for _, ok := range res {
		if ok {
			out.Valid++
		} else {
			out.Invalid++
		}
	}
	return out, nil
}

func (s *svc) Filter(ctx context.Context, in domain.FilterInput) (domain.FilterOutput, error) {
	cands := make([]icdom.Candidate, len(in.Items))
	for i, it := range in.Items {
		cands[i] = icdom.Candidate{ID: it.ID, ImageURL: it.ImageURL}
	}

	kept := s.checker.FilterValid(ctx, cands)

	items := make([]domain.FilterItem, len(kept))
	for i, c := range kept {
		items[i] = domain.FilterItem{ID: c.ID, ImageURL: c.ImageURL}
	}
	return domain.FilterOutput{Items: items, Dropped: len(in.Items) - len(kept)}, nil
}

func (s *svc) Status(ctx context.Context, url string) (domain.StatusOutput, error) {
	return domain.StatusOutput{URL: url, Valid: s.checker.IsValid(ctx, url)}, nil
}
