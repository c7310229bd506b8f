// Package sem provides a counting permit limiter with FIFO admission.
//
// A Limiter caps how many callers may hold a permit at once. Waiters are
// admitted in arrival order, so a burst of slow acquires cannot starve
// earlier ones. Release must be paired with a successful acquire; releasing
// more than held panics loudly rather than corrupting the count
package sem

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Limiter is a fixed-capacity permit source safe for concurrent use
type Limiter struct {
	cap   int64
	inUse atomic.Int64
	w     *semaphore.Weighted
}

// New constructs a Limiter with the given capacity (permits)
func New(capacity int) *Limiter {
	if capacity < 1 {
		panic("sem.New requires capacity >= 1")
	}
	return &Limiter{cap: int64(capacity), w: semaphore.NewWeighted(int64(capacity))}
}

// Acquire blocks until a permit is available or ctx is done.
// Waiters are served first-in first-out
func (l *Limiter) Acquire(ctx context.Context) error {
	if err := l.w.Acquire(ctx, 1); err != nil {
		return err
	}
	l.inUse.Add(1)
	return nil
}

// TryAcquire grabs a permit without blocking; reports whether it succeeded
func (l *Limiter) TryAcquire() bool {
	if !l.w.TryAcquire(1) {
		return false
	}
	l.inUse.Add(1)
	return true
}

// Release returns a permit. Panics if called more times than Acquire succeeded
func (l *Limiter) Release() {
	l.w.Release(1)
	l.inUse.Add(-1)
}

// Capacity returns the total number of permits
func (l *Limiter) Capacity() int { return int(l.cap) }

// InUse returns the number of permits currently held
func (l *Limiter) InUse() int { return int(l.inUse.Load()) }

// Available returns the number of permits not currently held
func (l *Limiter) Available() int { return int(l.cap - l.inUse.Load()) }
