package module

import (
	"sort"
	"sync"

	str "easel/internal/platform/strings"
)

// Port registry shared across the process. The api service fills it while
// mounting modules; anything needing a sibling's ports reads it afterwards
var (
	regMu  sync.RWMutex
	byName = map[string]any{}
)

// Register stores ports under name, replacing any previous entry. The name
// keys every later lookup, so registering blank panics
func Register(name string, ports any) {
	name = str.MustString(name, "module name")
	regMu.Lock()
	byName[name] = ports
	regMu.Unlock()
}

// PortsAs asserts the entry under name to T
func PortsAs[T any](name string) (T, bool) {
	regMu.RLock()
	v, found := byName[name]
	regMu.RUnlock()

	var zero T
	if !found {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// Names lists the registered modules sorted by name
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()

	out := make([]string, 0, len(byName))
	for k := range byName {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Reset empties the registry so tests start from nothing
func Reset() {
	regMu.Lock()
	byName = map[string]any{}
	regMu.Unlock()
}
