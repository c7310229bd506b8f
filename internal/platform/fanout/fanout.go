// Package fanout runs a slice of tasks concurrently under a permit limiter,
// with a per-task deadline and a choice of settlement policy.
//
// FailFast cancels everything on the first failure and surfaces that error.
// BestEffort lets every task settle and keeps whatever succeeded. Tasks that
// outlive their deadline are abandoned: the permit comes back immediately and
// a late result is discarded, never delivered
package fanout

import (
	"context"
	"errors"
	"sync"
	"time"

	perr "easel/internal/platform/errors"
	"easel/internal/platform/sem"

	"golang.org/x/sync/errgroup"
)

// Defaults applied when Options fields are zero
const (
	DefaultMaxConcurrency = 10
	DefaultTaskTimeout    = 30 * time.Second
)

// Task produces one value. The ctx it receives is canceled on task timeout
// or group teardown; well-behaved tasks should honor it
type Task[T any] func(ctx context.Context) (T, error)

// Policy selects how a run settles when tasks fail
type Policy int

const (
	// FailFast stops the run on the first failure or timeout
	FailFast Policy = iota

	// BestEffort lets every task settle and drops the failures
	BestEffort
)

// Status classifies how a single task settled
type Status int

const (
	// StatusCompleted means the task returned a value in time
	StatusCompleted Status = iota

	// StatusFailed means the task returned an error or was canceled
	StatusFailed

	// StatusTimedOut means the task exceeded its deadline and was abandoned
	StatusTimedOut
)

// String returns the lowercase wire name of the status
func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	case StatusTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Options tunes a run. The zero value gets the package defaults
type Options struct {
	// MaxConcurrency bounds tasks in flight; <= 0 means DefaultMaxConcurrency
	MaxConcurrency int

	// TaskTimeout is the per-task deadline; <= 0 means DefaultTaskTimeout
	TaskTimeout time.Duration

	// Policy is FailFast unless set to BestEffort
	Policy Policy

	// Limiter, when non-nil, is used instead of a run-local limiter so
	// several call sites can share one permit pool
	Limiter *sem.Limiter
}

func (o Options) withDefaults() Options {
	if o.MaxConcurrency <= 0 {
		o.MaxConcurrency = DefaultMaxConcurrency
	}
	if o.TaskTimeout <= 0 {
		o.TaskTimeout = DefaultTaskTimeout
	}
	return o
}

// Outcome records how the task at Index settled. Value is meaningful only
// when Status is StatusCompleted; Err only otherwise
type Outcome[T any] struct {
	Index  int
	Status Status
	Value  T
	Err    error
}

type taskResult[T any] struct {
	val T
	err error
}

// Run executes tasks and shapes the results by policy.
//
// FailFast: returns one value per task, positionally aligned, or nil and the
// first failure. BestEffort: returns the successful values in task order
// (failures dropped) and a nil error; use RunOutcomes when the caller needs
// to know which index produced which result
func Run[T any](ctx context.Context, tasks []Task[T], opts Options) ([]T, error) {
	opts = opts.withDefaults()
	outs, err := RunOutcomes(ctx, tasks, opts)
	if err != nil {
		return nil, err
	}
	if opts.Policy == BestEffort {
		vals := make([]T, 0, len(outs))
		for _, o := range outs {
			if o.Status == StatusCompleted {
				vals = append(vals, o.Value)
			}
		}
		return vals, nil
	}
	vals := make([]T, len(outs))
	for i, o := range outs {
		vals[i] = o.Value
	}
	return vals, nil
}

// RunOutcomes executes tasks and returns the full per-task settlement record,
// positionally aligned with tasks. Under FailFast the returned error is the
// first failure and later outcomes may be canceled; under BestEffort the
// error is always nil and every outcome is settled
func RunOutcomes[T any](ctx context.Context, tasks []Task[T], opts Options) ([]Outcome[T], error) {
	opts = opts.withDefaults()
	lim := opts.Limiter
	if lim == nil {
		lim = sem.New(opts.MaxConcurrency)
	}
	outs := make([]Outcome[T], len(tasks))

	if opts.Policy == FailFast {
		g, gctx := errgroup.WithContext(ctx)
		for i, task := range tasks {
			i, task := i, task
			g.Go(func() error {
				outs[i] = settle(gctx, i, task, lim, opts.TaskTimeout)
				return outs[i].Err
			})
		}
		if err := g.Wait(); err != nil {
			return outs, err
		}
		return outs, nil
	}

	var wg sync.WaitGroup
	for i, task := range tasks {
		i, task := i, task
		wg.Add(1)
		go func() {
			defer wg.Done()
			outs[i] = settle(ctx, i, task, lim, opts.TaskTimeout)
		}()
	}
	wg.Wait()
	return outs, nil
}

// settle runs one task under a permit and a deadline and classifies the result
func settle[T any](ctx context.Context, idx int, task Task[T], lim *sem.Limiter, timeout time.Duration) Outcome[T] {
	if err := lim.Acquire(ctx); err != nil {
		return Outcome[T]{
			Index:  idx,
			Status: StatusFailed,
			Err:    perr.Wrapf(err, perr.ErrorCodeTaskFailed, "task %d: queue wait aborted", idx),
		}
	}
	defer lim.Release()

	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// buffered so an abandoned task can still send without a receiver
	done := make(chan taskResult[T], 1)
	go func() {
		v, err := task(tctx)
		done <- taskResult[T]{val: v, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return Outcome[T]{
				Index:  idx,
				Status: StatusFailed,
				Err:    perr.Wrapf(r.err, perr.ErrorCodeTaskFailed, "task %d failed", idx),
			}
		}
		return Outcome[T]{Index: idx, Status: StatusCompleted, Value: r.val}
	case <-tctx.Done():
		if errors.Is(tctx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return Outcome[T]{
				Index:  idx,
				Status: StatusTimedOut,
				Err:    perr.TaskTimeoutf("task %d timed out after %v", idx, timeout),
			}
		}
		return Outcome[T]{
			Index:  idx,
			Status: StatusFailed,
			Err:    perr.Wrapf(ctx.Err(), perr.ErrorCodeTaskFailed, "task %d canceled", idx),
		}
	}
}
