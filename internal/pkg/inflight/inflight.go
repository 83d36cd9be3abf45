// Package inflight provides a per-key guard that prevents the same operation
// from being started twice within one process. The quick-ship workflow uses it
// to reject a second run for an order while a run is still active.
package inflight

import "sync"

// Guard tracks keys with an active operation. The zero value is not usable;
// create instances with NewGuard. Safe for concurrent use.
type Guard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewGuard creates an empty in-flight guard.
func NewGuard() *Guard {
	return &Guard{
		active: make(map[string]struct{}),
	}
}

// TryAcquire marks key as in-flight. Returns false when the key is already
// held, in which case the caller must not proceed and must not call Release.
func (g *Guard) TryAcquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, held := g.active[key]; held {
		return false
	}
	g.active[key] = struct{}{}
	return true
}

// Release clears the in-flight mark for key. Releasing a key that is not held
// is a no-op, so Release is safe to call from a defer regardless of outcome.
func (g *Guard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, key)
}

// Held reports whether key currently has an active operation.
func (g *Guard) Held(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, held := g.active[key]
	return held
}
