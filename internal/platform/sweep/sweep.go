// Package sweep runs named maintenance jobs on fixed cadences.
//
// Jobs are registered up front, started together, and stopped together; the
// runner owns the tickers and goroutines so janitorial work (cache purges,
// stale request reaps) has one lifecycle instead of free-floating timers
package sweep

import (
	"context"
	"sync"
	"time"

	"easel/internal/platform/logger"
)

type job struct {
	name  string
	every time.Duration
	fn    func(context.Context)
}

// Runner owns a set of periodic jobs. Register with Every, then Start once
type Runner struct {
	mu      sync.Mutex
	jobs    []job
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// New constructs an empty Runner
func New() *Runner { return &Runner{} }

// Every registers fn to run every interval. Must be called before Start
func (r *Runner) Every(every time.Duration, name string, fn func(context.Context)) {
	if every <= 0 {
		panic("sweep.Every requires a positive interval")
	}
	if name == "" {
		panic("sweep.Every requires a job name")
	}
	if fn == nil {
		panic("sweep.Every requires a non nil job")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		panic("sweep.Every called after Start")
	}
	r.jobs = append(r.jobs, job{name: name, every: every, fn: fn})
}

// Start launches one ticker loop per registered job. Loops stop when ctx is
// done or Stop is called
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		panic("sweep.Start called twice")
	}
	r.started = true

	ctx, r.cancel = context.WithCancel(ctx)
	for _, j := range r.jobs {
		r.wg.Add(1)
		go r.loop(ctx, j)
	}
}

// Stop halts every loop and waits for in-flight passes to finish.
// Safe to call without Start and safe to call twice
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	r.wg.Wait()
}

func (r *Runner) loop(ctx context.Context, j job) {
	defer r.wg.Done()
	log := logger.Named("sweep")

	t := time.NewTicker(j.every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.pass(ctx, j, log)
		}
	}
}

// pass runs one job tick with panic containment so a bad job cannot take
// down the runner
func (r *Runner) pass(ctx context.Context, j job, log *logger.Logger) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Str("job", j.name).Any("panic", rec).Msg("sweep job panicked")
		}
	}()
	start := time.Now()
	j.fn(ctx)
	log.Debug().Str("job", j.name).Dur("took", time.Since(start)).Msg("sweep pass done")
}
