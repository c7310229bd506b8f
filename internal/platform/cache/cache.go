// Package cache provides named in-memory TTL caches with bounded capacity.
//
// Two eviction flavors are supported: lru promotes entries on every hit and
// evicts the least recently used, fifo keeps pure insertion order and evicts
// the oldest entry. Either way a full cache evicts exactly one entry to admit
// a new key, and expired entries are removed lazily on read plus in bulk by
// PurgeExpired (normally driven by the sweep runner)
package cache

import (
	"container/list"
	"sync"
	"time"

	perr "easel/internal/platform/errors"

	"github.com/go-playground/validator/v10"
)

// Eviction names an eviction flavor
type Eviction string

const (
	// EvictLRU promotes on hit and evicts the least recently used entry
	EvictLRU Eviction = "lru"

	// EvictFIFO keeps insertion order and evicts the oldest entry
	EvictFIFO Eviction = "fifo"
)

// Policy bounds one cache. Eviction defaults to lru when empty
type Policy struct {
	MaxEntries int           `json:"max_entries" validate:"gte=1"`
	TTL        time.Duration `json:"ttl"         validate:"gt=0"`
	Eviction   Eviction      `json:"eviction"    validate:"oneof=lru fifo"`
}

// Stats is a point-in-time counter snapshot for one cache
type Stats struct {
	Name        string   `json:"name"`
	Size        int      `json:"size"`
	Capacity    int      `json:"capacity"`
	Eviction    Eviction `json:"eviction"`
	Hits        uint64   `json:"hits"`
	Misses      uint64   `json:"misses"`
	Evictions   uint64   `json:"evictions"`
	Expirations uint64   `json:"expirations"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type entry[V any] struct {
	key string
	val V
	exp time.Time // zero means no expiry
}

func (e *entry[V]) expired(now time.Time) bool {
	return !e.exp.IsZero() && !e.exp.After(now)
}

// Cache is one named, bounded, TTL'd key-value store. Safe for concurrent use
type Cache[V any] struct {
	name string
	pol  Policy

	mu  sync.Mutex
	ll  *list.List // front = most recent, back = eviction candidate
	idx map[string]*list.Element

	hits        uint64
	misses      uint64
	evictions   uint64
	expirations uint64

	nowFn func() time.Time
}

// New constructs a standalone cache. Most callers want Create, which also
// registers the cache for sweeping and stats
func New[V any](name string, pol Policy) (*Cache[V], error) {
	if name == "" {
		return nil, perr.InvalidArgf("cache name is required")
	}
	if pol.Eviction == "" {
		pol.Eviction = EvictLRU
	}
	if err := validate.Struct(pol); err != nil {
		return nil, perr.Newf(perr.ErrorCodeValidation, "invalid policy for cache %q: %v", name, err)
	}
	return &Cache[V]{
		name:  name,
		pol:   pol,
		ll:    list.New(),
		idx:   make(map[string]*list.Element),
		nowFn: time.Now,
	}, nil
}

// Name returns the cache's registry name
func (c *Cache[V]) Name() string { return c.name }

// Policy returns the policy the cache was built with
func (c *Cache[V]) Policy() Policy { return c.pol }

// Get returns the live value for key. An expired entry is deleted on the way
// out and reported as a miss
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.idx[key]
	if !ok {
		c.misses++
		return zero, false
	}
	ent := el.Value.(*entry[V])
	if ent.expired(c.nowFn()) {
		c.removeLocked(el)
		c.expirations++
		c.misses++
		return zero, false
	}
	if c.pol.Eviction == EvictLRU {
		c.ll.MoveToFront(el)
	}
	c.hits++
	return ent.val, true
}

// Set stores value under key with the cache's default TTL. Updating an
// existing key keeps its fifo position but promotes under lru. Admitting a
// new key into a full cache evicts exactly one entry first
func (c *Cache[V]) Set(key string, value V) {
	c.SetTTL(key, value, c.pol.TTL)
}

// SetTTL stores value under key with an explicit ttl. A ttl <= 0 means the
// entry never expires, though it remains subject to eviction
func (c *Cache[V]) SetTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var exp time.Time
	if ttl > 0 {
		exp = c.nowFn().Add(ttl)
	}
	if el, ok := c.idx[key]; ok {
		ent := el.Value.(*entry[V])
		ent.val = value
		ent.exp = exp
		if c.pol.Eviction == EvictLRU {
			c.ll.MoveToFront(el)
		}
		return
	}

	if c.ll.Len() >= c.pol.MaxEntries {
		if back := c.ll.Back(); back != nil {
			c.removeLocked(back)
			c.evictions++
		}
	}
	c.idx[key] = c.ll.PushFront(&entry[V]{key: key, val: value, exp: exp})
}

// Delete removes key; reports whether it was present
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.idx[key]
	if !ok {
		return false
	}
	c.removeLocked(el)
	return true
}

// Clear empties the cache without touching the hit/miss counters
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.idx = make(map[string]*list.Element)
}

// Len returns the number of entries, expired ones included until purged
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// PurgeExpired removes every expired entry and returns how many went
func (c *Cache[V]) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.nowFn()
	removed := 0
	for el := c.ll.Front(); el != nil; {
		next := el.Next()
		if ent := el.Value.(*entry[V]); ent.expired(now) {
			c.removeLocked(el)
			removed++
		}
		el = next
	}
	c.expirations += uint64(removed)
	return removed
}

// Stats returns a snapshot of the cache's counters
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Name:        c.name,
		Size:        c.ll.Len(),
		Capacity:    c.pol.MaxEntries,
		Eviction:    c.pol.Eviction,
		Hits:        c.hits,
		Misses:      c.misses,
		Evictions:   c.evictions,
		Expirations: c.expirations,
	}
}

// removeLocked unlinks el from both the list and the index. Callers hold c.mu
func (c *Cache[V]) removeLocked(el *list.Element) {
	c.ll.Remove(el)
	delete(c.idx, el.Value.(*entry[V]).key)
}
