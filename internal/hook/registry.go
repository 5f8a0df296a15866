package hook

import (
	"sort"
	"sync"
)

// DefaultPriority is the priority used by Add when the caller has no preference.
const DefaultPriority = 10

// Func transforms value and returns the result. args carry the context the
// hook was applied with (for markup hooks, the publication being rendered).
type Func func(value any, args ...any) any

type entry struct {
	priority int
	seq      int
	fn       Func
}

// Registry holds named, ordered filter chains.
type Registry struct {
	mu     sync.RWMutex
	chains map[string][]entry
	seq    int
}

func NewRegistry() *Registry {
	return &Registry{chains: make(map[string][]entry)}
}

// Add appends fn to the chain called name. Lower priorities run first;
// filters with equal priority run in the order they were added.
func (r *Registry) Add(name string, priority int, fn Func) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	chain := append(r.chains[name], entry{priority: priority, seq: r.seq, fn: fn})
	sort.SliceStable(chain, func(i, j int) bool {
		if chain[i].priority != chain[j].priority {
			return chain[i].priority < chain[j].priority
		}
		return chain[i].seq < chain[j].seq
	})
	r.chains[name] = chain
}

// Has reports whether any filter is attached to name.
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chains[name]) > 0
}

// Remove drops every filter attached to name.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.chains, name)
}

// Apply runs value through the chain called name. A nil registry or an empty
// chain returns value unchanged.
func (r *Registry) Apply(name string, value any, args ...any) any {
	if r == nil {
		return value
	}
	r.mu.RLock()
	chain := make([]entry, len(r.chains[name]))
	copy(chain, r.chains[name])
	r.mu.RUnlock()

	for _, e := range chain {
		value = e.fn(value, args...)
	}
	return value
}

// AddFilter attaches a typed filter. It only runs when the value flowing
// through the chain is a T.
func AddFilter[T any](r *Registry, name string, priority int, fn func(value T, args ...any) T) {
	r.Add(name, priority, func(value any, args ...any) any {
		v, ok := value.(T)
		if !ok {
			return value
		}
		return fn(v, args...)
	})
}

// Apply runs a typed value through the chain called name. If the chain hands
// back something other than a T, the input value is returned.
func Apply[T any](r *Registry, name string, value T, args ...any) T {
	out, ok := r.Apply(name, value, args...).(T)
	if !ok {
		return value
	}
	return out
}
