// Package domain defines core types and ports for image validation
package domain

import "time"

// Verdict is one validation outcome for a resource URL
type Verdict struct {
	Valid     bool      `json:"valid"`
	CheckedAt time.Time `json:"checked_at"`
}

// Candidate is a collection member backed by exactly one image URL
type Candidate struct {
	ID       string `json:"id"`
	ImageURL string `json:"image_url"`
}

// ValidatorStats counts checker activity for the stats API
type ValidatorStats struct {
	Checks        uint64 `json:"checks"`
	CacheHits     uint64 `json:"cache_hits"`
	Probes        uint64 `json:"probes"`
	ProbeFailures uint64 `json:"probe_failures"`
	PendingGroups int    `json:"pending_groups"`
	PendingItems  int    `json:"pending_items"`
}
