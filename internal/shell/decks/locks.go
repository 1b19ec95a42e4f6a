package decks

import "sync"

// =============================================================================
// Per-Deck Locking
// =============================================================================

// keyedMutex serializes work per key. Deck mutations hold the deck's lock
// across the whole load-validate-persist sequence, so two concurrent
// additions can never both validate against the same stale read.
//
// Locks are never evicted; the per-deck footprint is one mutex, which is
// acceptable for a single-process server.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the lock for key and returns its unlock function.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
