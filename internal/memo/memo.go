package memo

import (
	"sync"
)

// Group memoizes one value per key for the lifetime of the group. Entries are
// never evicted; the group grows with the number of distinct keys seen.
type Group[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

// New creates an empty Group.
func New[K comparable, V any]() *Group[K, V] {
	return &Group[K, V]{
		m: make(map[K]V),
	}
}

// Do returns the value stored for key, calling fn to build it on first use.
// Concurrent first calls for the same key all receive the value built by
// exactly one of them. The second result reports whether fn ran.
func (g *Group[K, V]) Do(key K, fn func() V) (V, bool) {
	g.mu.RLock()
	v, ok := g.m[key]
	g.mu.RUnlock()
	if ok {
		return v, false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// Another caller may have won the race between the two locks.
	if v, ok := g.m[key]; ok {
		return v, false
	}

	v = fn()
	g.m[key] = v
	return v, true
}

// Get returns the stored value without creating one.
func (g *Group[K, V]) Get(key K) (V, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.m[key]
	return v, ok
}

// Len reports the number of memoized keys.
func (g *Group[K, V]) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.m)
}
