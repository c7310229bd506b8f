package domain

import "context"

// ProberPort is the outbound seam to the asset host.
// adapters/imagehost satisfies it
type ProberPort interface {
	Probe(ctx context.Context, url string) (status int, contentType string, err error)
}

// CheckerPort is consumed by handlers and collaborator pipelines
type CheckerPort interface {
	IsValid(ctx context.Context, url string) bool
	ValidateMany(ctx context.Context, urls []string) map[string]bool
	FilterValid(ctx context.Context, items []Candidate) []Candidate
}

// StatsPort exposes checker counters for the stats API
type StatsPort interface {
	ValidatorStats() ValidatorStats
}
