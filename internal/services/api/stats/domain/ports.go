package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Caches(ctx context.Context) ([]CacheRow, error)
	ClearCache(ctx context.Context, name string) (ClearOutput, error)
	PurgeCaches(ctx context.Context) (PurgeOutput, error)
	Requests(ctx context.Context, limit int) (RequestsOutput, error)
	Validator(ctx context.Context) (ValidatorOutput, error)
}
