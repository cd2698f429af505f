package module

import (
	"sort"
	"sync"
)

// the registry records each mounted module's ports by name during bootstrap
var (
	mu  sync.RWMutex
	reg = map[string]PortSet{}
)

// Register stores the port set for a module name, replacing any earlier entry
func Register(name string, ports PortSet) {
	mu.Lock()
	defer mu.Unlock()
	reg[name] = ports
}

// PortsAs fetches the port set registered under name as T
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	out, ok2 := v.(T)
	return out, ok && ok2
}

// Names lists registered module names in order
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(reg))
	for n := range reg {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Reset clears the registry for tests
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	reg = map[string]PortSet{}
}
