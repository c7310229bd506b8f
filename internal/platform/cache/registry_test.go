package cache

import (
	"testing"
	"time"

	perr "easel/internal/platform/errors"
)

func TestCreateRegistersAndRejectsDuplicates(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	pol := Policy{MaxEntries: 10, TTL: time.Minute}

	c1, err := Create[string](reg, "api-responses", pol)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c1.Name() != "api-responses" {
		t.Fatalf("Name = %q", c1.Name())
	}

	if _, err := Create[int](reg, "api-responses", pol); !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("duplicate Create err = %v, want Conflict", err)
	}

	// invalid policy never registers
	if _, err := Create[int](reg, "broken", Policy{}); err == nil {
		t.Fatalf("invalid policy must not register")
	}
	if _, ok := reg.Get("broken"); ok {
		t.Fatalf("broken cache leaked into registry")
	}

	h, ok := reg.Get("api-responses")
	if !ok || h.Name() != "api-responses" {
		t.Fatalf("Get lost the registered cache")
	}
	if _, ok := reg.Get("nope"); ok {
		t.Fatalf("Get found an unregistered name")
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	pol := Policy{MaxEntries: 5, TTL: time.Minute}
	for _, n := range []string{"zeta", "alpha", "mid"} {
		if _, err := Create[string](reg, n, pol); err != nil {
			t.Fatalf("Create(%s): %v", n, err)
		}
	}
	got := reg.Names()
	want := []string{"alpha", "mid", "zeta"}
	if len(got) != len(want) {
		t.Fatalf("Names = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names = %v, want %v", got, want)
		}
	}
}

func TestRegistryStatsAndPurge(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	a, err := Create[string](reg, "a", Policy{MaxEntries: 10, TTL: time.Minute})
	if err != nil {
		t.Fatalf("Create a: %v", err)
	}
	b, err := Create[int](reg, "b", Policy{MaxEntries: 10, TTL: time.Minute, Eviction: EvictFIFO})
	if err != nil {
		t.Fatalf("Create b: %v", err)
	}

	advA := clockAt(a)
	curB := time.Unix(1700000000, 0)
	b.nowFn = func() time.Time { return curB }

	a.Set("x", "1")
	a.Set("y", "2")
	b.Set("n", 1)

	advA(2 * time.Minute)            // both of a's entries expire
	curB = curB.Add(2 * time.Minute) // b's entry expires

	if total := reg.PurgeExpired(); total != 3 {
		t.Fatalf("PurgeExpired total = %d, want 3", total)
	}

	stats := reg.Stats()
	if len(stats) != 2 {
		t.Fatalf("Stats len = %d, want 2", len(stats))
	}
	if stats["a"].Expirations != 2 || stats["a"].Size != 0 {
		t.Fatalf("stats[a] = %+v", stats["a"])
	}
	if stats["b"].Expirations != 1 || stats["b"].Eviction != EvictFIFO {
		t.Fatalf("stats[b] = %+v", stats["b"])
	}
}
