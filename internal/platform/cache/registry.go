package cache

import (
	"sort"
	"sync"

	perr "easel/internal/platform/errors"
)

// Handle is the type-erased view the registry keeps of every cache,
// enough for sweeping and stats without knowing the value type
type Handle interface {
	Name() string
	Len() int
	Clear()
	PurgeExpired() int
	Stats() Stats
}

// Registry tracks named caches so sweeps and stats can reach all of them.
// Names are unique; registering a duplicate is a conflict
type Registry struct {
	mu     sync.RWMutex
	caches map[string]Handle
}

// NewRegistry constructs an empty Registry
func NewRegistry() *Registry {
	return &Registry{caches: make(map[string]Handle)}
}

// Create builds a cache under pol and registers it with r by name
func Create[V any](r *Registry, name string, pol Policy) (*Cache[V], error) {
	c, err := New[V](name, pol)
	if err != nil {
		return nil, err
	}
	if err := r.register(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Registry) register(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.caches[h.Name()]; dup {
		return perr.Conflictf("cache %q already registered", h.Name())
	}
	r.caches[h.Name()] = h
	return nil
}

// Get returns the registered cache handle for name
func (r *Registry) Get(name string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.caches[name]
	return h, ok
}

// Names returns the registered cache names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.caches))
	for n := range r.caches {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Stats snapshots every registered cache, keyed by name
func (r *Registry) Stats() map[string]Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Stats, len(r.caches))
	for n, h := range r.caches {
		out[n] = h.Stats()
	}
	return out
}

// PurgeExpired sweeps every registered cache and returns the total removed
func (r *Registry) PurgeExpired() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, h := range r.caches {
		total += h.PurgeExpired()
	}
	return total
}
