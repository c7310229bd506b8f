// Package domain holds DTOs for stats http and service contracts
package domain

import "time"

// CacheRow is one named cache's counters
type CacheRow struct {
	Name        string `json:"name" example:"image-verdicts"`
	Size        int    `json:"size" example:"412"`
	Capacity    int    `json:"capacity" example:"10000"`
	Eviction    string `json:"eviction" example:"lru"`
	Hits        uint64 `json:"hits" example:"90231"`
	Misses      uint64 `json:"misses" example:"1204"`
	Evictions   uint64 `json:"evictions" example:"88"`
	Expirations uint64 `json:"expirations" example:"419"`
}

// ClearOutput reports a single cache wipe
type ClearOutput struct {
	Name    string `json:"name" example:"api-responses"`
	Cleared int    `json:"cleared" example:"412"`
}

// PurgeOutput reports an expiry sweep across every named cache
type PurgeOutput struct {
	Purged int `json:"purged" example:"37"`
}

// RequestRow is one tracked in flight request
type RequestRow struct {
	ID        string    `json:"id" example:"9f1c2d3e-77ab-4e1c-9c01-2b6f2f1f4a55"`
	StartedAt time.Time `json:"started_at"`
	AgeMs     int64     `json:"age_ms" example:"1532"`
}

// RequestsOutput reports tracker counters plus the oldest in flight rows
type RequestsOutput struct {
	Active   int          `json:"active" example:"3"`
	Acquired uint64       `json:"acquired" example:"180231"`
	Released uint64       `json:"released" example:"180228"`
	Reaped   uint64       `json:"reaped" example:"2"`
	OldestAt *time.Time   `json:"oldest_at,omitempty"`
	Requests []RequestRow `json:"requests"`
}

// ValidatorOutput reports the image checker counters
type ValidatorOutput struct {
	Checks        uint64 `json:"checks" example:"52310"`
	CacheHits     uint64 `json:"cache_hits" example:"49822"`
	Probes        uint64 `json:"probes" example:"2488"`
	ProbeFailures uint64 `json:"probe_failures" example:"31"`
	PendingGroups int    `json:"pending_groups" example:"1"`
	PendingItems  int    `json:"pending_items" example:"4"`
}
