package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Validate(ctx context.Context, in ValidateInput) (ValidateOutput, error)
	Filter(ctx context.Context, in FilterInput) (FilterOutput, error)
	Status(ctx context.Context, url string) (StatusOutput, error)
}
