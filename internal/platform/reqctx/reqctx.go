// Package reqctx tracks in-flight requests by id so long-running or leaked
// ones stay visible and can be reaped.
//
// Acquire registers an id (generating one when the caller has none) and is
// idempotent: re-acquiring an active id returns the same Record with its
// original start time. Release is explicit, and PurgeStale clears entries
// that outlived their welcome, normally on the sweep runner's cadence
package reqctx

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultStaleAfter is how old a record must be before PurgeStale reaps it
const DefaultStaleAfter = 10 * time.Minute

// Record is the bookkeeping state for one tracked request.
// ID and StartedAt are fixed at acquisition; the metadata bag is open to
// collaborators and guarded for concurrent use
type Record struct {
	ID        string
	StartedAt time.Time

	mu   sync.Mutex
	meta map[string]any
}

// Set stores a metadata value on the record
func (r *Record) Set(key string, v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.meta == nil {
		r.meta = make(map[string]any)
	}
	r.meta[key] = v
}

// Value reads a metadata value; ok reports whether the key was ever set
func (r *Record) Value(key string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.meta[key]
	return v, ok
}

// Meta returns a copy of the metadata bag
func (r *Record) Meta() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]any, len(r.meta))
	for k, v := range r.meta {
		out[k] = v
	}
	return out
}

// Entry is a point-in-time view of one tracked request
type Entry struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
}

// Stats is a point-in-time counter snapshot for the registry
type Stats struct {
	Active   int    `json:"active"`
	Acquired uint64 `json:"acquired"`
	Released uint64 `json:"released"`
	Reaped   uint64 `json:"reaped"`
}

// Registry tracks active requests by id. Safe for concurrent use
type Registry struct {
	mu     sync.Mutex
	active map[string]*Record

	acquired uint64
	released uint64
	reaped   uint64

	nowFn func() time.Time
	idFn  func() string
}

// New constructs an empty Registry
func New() *Registry {
	return &Registry{
		active: make(map[string]*Record),
		nowFn:  time.Now,
		idFn:   uuid.NewString,
	}
}

// Acquire registers id and returns its record. An empty id gets a generated
// one. Acquiring an id that is already active returns the existing record
// with its original start time
func (r *Registry) Acquire(id string) *Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == "" {
		id = r.idFn()
	}
	if rec, exists := r.active[id]; exists {
		return rec
	}
	rec := &Record{ID: id, StartedAt: r.nowFn()}
	r.active[id] = rec
	r.acquired++
	return rec
}

// Release drops id from the registry; reports whether it was active
func (r *Registry) Release(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.active[id]; !exists {
		return false
	}
	delete(r.active, id)
	r.released++
	return true
}

// Active returns the number of tracked requests
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

// Snapshot lists the tracked requests, oldest first
func (r *Registry) Snapshot() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, 0, len(r.active))
	for _, rec := range r.active {
		out = append(out, Entry{ID: rec.ID, StartedAt: rec.StartedAt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}

// PurgeStale reaps records older than maxAge (<= 0 means DefaultStaleAfter)
// and returns how many went. Reaped records count separately from releases
func (r *Registry) PurgeStale(maxAge time.Duration) int {
	if maxAge <= 0 {
		maxAge = DefaultStaleAfter
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.nowFn().Add(-maxAge)
	removed := 0
	for id, rec := range r.active {
		if !rec.StartedAt.After(cutoff) {
			delete(r.active, id)
			removed++
		}
	}
	r.reaped += uint64(removed)
	return removed
}

// Stats returns a snapshot of the registry's counters
func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{
		Active:   len(r.active),
		Acquired: r.acquired,
		Released: r.released,
		Reaped:   r.reaped,
	}
}
