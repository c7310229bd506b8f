package strings

import "testing"

// wantPanic fails the test unless fn panics
func wantPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s should panic", name)
		}
	}()
	fn()
}

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	hosts := []string{"cdn.example", "img.example"}
	if got := IfEmpty(hosts, []string{"fallback"}); len(got) != 2 || got[0] != "cdn.example" {
		t.Fatalf("non-empty input should pass through: %#v", got)
	}

	var none []string
	if got := IfEmpty(none, []string{"fallback"}); len(got) != 1 || got[0] != "fallback" {
		t.Fatalf("empty input should use the default: %#v", got)
	}
}

func TestMustString(t *testing.T) {
	if got := MustString("imagecheck", "module name"); got != "imagecheck" {
		t.Fatalf("got %q", got)
	}
	wantPanic(t, `MustString("   ")`, func() { MustString("   ", "module name") })
}

func TestMustPrefix(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"/images", "/images"},
		{"/images/", "/images"},
		{" stats  ", "/stats"},
		{"//caches//", "/caches"},
	} {
		if got := MustPrefix(tc.in); got != tc.want {
			t.Fatalf("MustPrefix(%q) = %q want %q", tc.in, got, tc.want)
		}
	}

	for _, in := range []string{"/", "", "   "} {
		wantPanic(t, "MustPrefix("+in+")", func() { MustPrefix(in) })
	}
}
