// Package batch coalesces individual requests into keyed batches.
//
// Items added under the same key pool up until the batch either reaches
// MaxSize or has been open for MaxWait, whichever comes first. Exactly one
// flush happens per batch: the group is unhooked from the registry before
// the processor runs, so concurrent adds under the same key start a fresh
// batch instead of racing the in-flight one. Results come back positionally,
// one per item, and a processor failure fails every waiter in the batch
package batch

import (
	"context"
	"sync"
	"time"

	perr "easel/internal/platform/errors"
)

// Defaults applied when Options fields are zero
const (
	DefaultMaxSize = 10
	DefaultMaxWait = 100 * time.Millisecond
)

// Processor resolves one flushed batch. It must return exactly one result
// per item, positionally aligned. The ctx is the coalescer's lifecycle
// context, not any single caller's
type Processor[T, R any] func(ctx context.Context, items []T) ([]R, error)

// Options tunes a Coalescer. The zero value gets the package defaults
type Options struct {
	// MaxSize flushes a batch the moment it holds this many items; <= 0 means DefaultMaxSize
	MaxSize int

	// MaxWait flushes a batch this long after its first item; <= 0 means DefaultMaxWait
	MaxWait time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxSize <= 0 {
		o.MaxSize = DefaultMaxSize
	}
	if o.MaxWait <= 0 {
		o.MaxWait = DefaultMaxWait
	}
	return o
}

type settled[R any] struct {
	val R
	err error
}

type group[T, R any] struct {
	items   []T
	waiters []chan settled[R]
	timer   *time.Timer
	flushed bool
}

// Coalescer batches items by key and fans results back to the callers that
// contributed them. Safe for concurrent use
type Coalescer[T, R any] struct {
	proc   Processor[T, R]
	opts   Options
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	groups map[string]*group[T, R]
	closed bool
}

// New constructs a Coalescer around proc
func New[T, R any](proc Processor[T, R], opts Options) *Coalescer[T, R] {
	if proc == nil {
		panic("batch.New requires a non nil processor")
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Coalescer[T, R]{
		proc:   proc,
		opts:   opts.withDefaults(),
		ctx:    ctx,
		cancel: cancel,
		groups: make(map[string]*group[T, R]),
	}
}

// Add enrolls item in the batch for key and blocks until that batch flushes
// and resolves, or ctx is done. A caller that gives up waiting gets ctx.Err()
// back but its item stays enrolled and still flushes with the batch
func (c *Coalescer[T, R]) Add(ctx context.Context, key string, item T) (R, error) {
	var zero R

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return zero, perr.Unavailablef("coalescer is closed")
	}
	g := c.groups[key]
	if g == nil {
		g = &group[T, R]{}
		c.groups[key] = g
		// first item arms the flush timer for this batch
		g.timer = time.AfterFunc(c.opts.MaxWait, func() { c.flushTimed(key, g) })
	}
	g.items = append(g.items, item)
	ch := make(chan settled[R], 1)
	g.waiters = append(g.waiters, ch)
	full := len(g.items) >= c.opts.MaxSize
	if full {
		c.detachLocked(key, g)
	}
	c.mu.Unlock()

	if full {
		go c.process(g)
	}

	select {
	case s := <-ch:
		return s.val, s.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// flushTimed is the timer path; it loses quietly if the size path got there first
func (c *Coalescer[T, R]) flushTimed(key string, g *group[T, R]) {
	c.mu.Lock()
	if g.flushed {
		c.mu.Unlock()
		return
	}
	c.detachLocked(key, g)
	c.mu.Unlock()
	c.process(g)
}

// detachLocked removes the group from the registry and marks it flushed.
// Callers must hold c.mu. After this a new group can form under the same key
func (c *Coalescer[T, R]) detachLocked(key string, g *group[T, R]) {
	g.flushed = true
	g.timer.Stop()
	delete(c.groups, key)
}

// process runs the processor once for a detached group and settles every
// waiter. A processor error fails the whole batch; a short result slice
// resolves the matched prefix and fails only the unmatched waiters
func (c *Coalescer[T, R]) process(g *group[T, R]) {
	res, err := c.invoke(g.items)
	if err != nil {
		if !perr.IsCode(err, perr.ErrorCodeBatchFailed) {
			err = perr.Wrapf(err, perr.ErrorCodeBatchFailed, "batch processing failed")
		}
		for _, ch := range g.waiters {
			ch <- settled[R]{err: err}
		}
		return
	}
	for i, ch := range g.waiters {
		if i < len(res) {
			ch <- settled[R]{val: res[i]}
			continue
		}
		ch <- settled[R]{err: perr.BatchFailedf(
			"batch processor returned %d results for %d items", len(res), len(g.items))}
	}
}

// invoke calls the processor with panic containment
func (c *Coalescer[T, R]) invoke(items []T) (res []R, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, perr.BatchFailedf("batch processor panicked: %v", r)
		}
	}()
	return c.proc(c.ctx, items)
}

// Depth reports the number of open batches and the items queued across them
func (c *Coalescer[T, R]) Depth() (groups, items int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, g := range c.groups {
		items += len(g.items)
	}
	return len(c.groups), items
}

// Close drains every open batch synchronously, then cancels the lifecycle
// context handed to the processor. Further adds fail with an unavailable
// error. Safe to call more than once
func (c *Coalescer[T, R]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	pending := make([]*group[T, R], 0, len(c.groups))
	for key, g := range c.groups {
		c.detachLocked(key, g)
		pending = append(pending, g)
	}
	c.mu.Unlock()

	for _, g := range pending {
		c.process(g)
	}
	c.cancel()
}
