package fanout

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	perr "easel/internal/platform/errors"
	"easel/internal/platform/sem"
)

func TestRunFailFastAllSucceed(t *testing.T) {
	t.Parallel()

	tasks := make([]Task[int], 5)
	for i := range tasks {
		n := i
		tasks[n] = func(context.Context) (int, error) { return n * n, nil }
	}

	vals, err := Run(context.Background(), tasks, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(vals) != 5 {
		t.Fatalf("len = %d, want 5", len(vals))
	}
	for i, v := range vals {
		if v != i*i {
			t.Fatalf("vals[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestRunFailFastStopsOnFirstError(t *testing.T) {
	t.Parallel()

	var slowSawCancel atomic.Bool
	tasks := []Task[string]{
		func(ctx context.Context) (string, error) {
			select {
			case <-time.After(2 * time.Second):
				return "slow", nil
			case <-ctx.Done():
				slowSawCancel.Store(true)
				return "", ctx.Err()
			}
		},
		func(context.Context) (string, error) {
			return "", fmt.Errorf("boom")
		},
	}

	start := time.Now()
	vals, err := Run(context.Background(), tasks, Options{Policy: FailFast})
	if err == nil {
		t.Fatalf("expected first error to propagate")
	}
	if vals != nil {
		t.Fatalf("values must be discarded on failure, got %v", vals)
	}
	if !perr.IsCode(err, perr.ErrorCodeTaskFailed) {
		t.Fatalf("error code = %v, want TaskFailed", perr.CodeOf(err))
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("fail-fast run took %v; sibling was not canceled", elapsed)
	}
	if !slowSawCancel.Load() {
		t.Fatalf("slow sibling never observed cancellation")
	}
}

func TestRunBestEffortKeepsSuccessesInOrder(t *testing.T) {
	t.Parallel()

	tasks := []Task[string]{
		func(context.Context) (string, error) { return "a", nil },
		func(context.Context) (string, error) { return "", fmt.Errorf("skip me") },
		func(context.Context) (string, error) { return "c", nil },
		func(context.Context) (string, error) { return "", fmt.Errorf("me too") },
		func(context.Context) (string, error) { return "e", nil },
	}

	vals, err := Run(context.Background(), tasks, Options{Policy: BestEffort})
	if err != nil {
		t.Fatalf("best-effort run must not error: %v", err)
	}
	want := []string{"a", "c", "e"}
	if len(vals) != len(want) {
		t.Fatalf("vals = %v, want %v", vals, want)
	}
	for i := range want {
		if vals[i] != want[i] {
			t.Fatalf("vals[%d] = %q, want %q", i, vals[i], want[i])
		}
	}
}

func TestRunOutcomesAlignment(t *testing.T) {
	t.Parallel()

	tasks := []Task[int]{
		func(context.Context) (int, error) { return 10, nil },
		func(context.Context) (int, error) { return 0, fmt.Errorf("nope") },
		func(context.Context) (int, error) { return 30, nil },
	}

	outs, err := RunOutcomes(context.Background(), tasks, Options{Policy: BestEffort})
	if err != nil {
		t.Fatalf("RunOutcomes: %v", err)
	}
	if len(outs) != 3 {
		t.Fatalf("len = %d, want 3", len(outs))
	}
	if outs[0].Status != StatusCompleted || outs[0].Value != 10 || outs[0].Index != 0 {
		t.Fatalf("outcome 0 wrong: %+v", outs[0])
	}
	if outs[1].Status != StatusFailed || outs[1].Err == nil || outs[1].Index != 1 {
		t.Fatalf("outcome 1 wrong: %+v", outs[1])
	}
	if outs[2].Status != StatusCompleted || outs[2].Value != 30 {
		t.Fatalf("outcome 2 wrong: %+v", outs[2])
	}
}

func TestTaskTimeoutAbandonsAndClassifies(t *testing.T) {
	t.Parallel()

	tasks := []Task[int]{
		func(ctx context.Context) (int, error) {
			// ignores ctx on purpose; must be abandoned, not waited for
			time.Sleep(500 * time.Millisecond)
			return 1, nil
		},
		func(context.Context) (int, error) { return 2, nil },
	}

	start := time.Now()
	outs, err := RunOutcomes(context.Background(), tasks, Options{
		Policy:      BestEffort,
		TaskTimeout: 40 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("RunOutcomes: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 300*time.Millisecond {
		t.Fatalf("run waited %v for an abandoned task", elapsed)
	}
	if outs[0].Status != StatusTimedOut {
		t.Fatalf("outcome 0 = %v, want timed_out", outs[0].Status)
	}
	if !perr.IsCode(outs[0].Err, perr.ErrorCodeTaskTimeout) {
		t.Fatalf("timeout error code = %v", perr.CodeOf(outs[0].Err))
	}
	if outs[1].Status != StatusCompleted || outs[1].Value != 2 {
		t.Fatalf("outcome 1 wrong: %+v", outs[1])
	}
}

func TestTimeoutReleasesPermit(t *testing.T) {
	t.Parallel()

	lim := sem.New(1)
	tasks := []Task[int]{
		func(context.Context) (int, error) {
			time.Sleep(400 * time.Millisecond) // well past the deadline
			return 1, nil
		},
		func(context.Context) (int, error) { return 2, nil },
	}

	start := time.Now()
	outs, err := RunOutcomes(context.Background(), tasks, Options{
		Policy:      BestEffort,
		TaskTimeout: 40 * time.Millisecond,
		Limiter:     lim,
	})
	if err != nil {
		t.Fatalf("RunOutcomes: %v", err)
	}
	// task 2 can only have run if the abandoned task's permit came back
	if outs[1].Status != StatusCompleted {
		t.Fatalf("second task starved: %+v", outs[1])
	}
	if elapsed := time.Since(start); elapsed > 300*time.Millisecond {
		t.Fatalf("permit held across abandonment; run took %v", elapsed)
	}
	if lim.InUse() != 0 {
		t.Fatalf("permits leaked: inUse=%d", lim.InUse())
	}
}

func TestConcurrencyBoundHolds(t *testing.T) {
	t.Parallel()

	const bound = 2
	var cur, peak atomic.Int64

	tasks := make([]Task[struct{}], 12)
	for i := range tasks {
		tasks[i] = func(context.Context) (struct{}, error) {
			n := cur.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			cur.Add(-1)
			return struct{}{}, nil
		}
	}

	if _, err := Run(context.Background(), tasks, Options{MaxConcurrency: bound}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := peak.Load(); got > bound {
		t.Fatalf("peak concurrency %d exceeded bound %d", got, bound)
	}
}

func TestRunEmptyTaskList(t *testing.T) {
	t.Parallel()

	vals, err := Run[int](context.Background(), nil, Options{})
	if err != nil || len(vals) != 0 {
		t.Fatalf("empty run = (%v, %v), want ([], nil)", vals, err)
	}
}

func TestParentCancelFailsTheRun(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	tasks := []Task[int]{
		func(ctx context.Context) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		},
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	if _, err := Run(ctx, tasks, Options{Policy: FailFast}); err == nil {
		t.Fatalf("expected error after parent cancel")
	}
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	cases := map[Status]string{
		StatusCompleted: "completed",
		StatusFailed:    "failed",
		StatusTimedOut:  "timed_out",
		Status(99):      "unknown",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Fatalf("Status(%d).String() = %q, want %q", s, got, want)
		}
	}
}
