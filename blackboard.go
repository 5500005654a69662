package statetree

import "sync"

// Blackboard is thread-safe shared storage for extended state: facts the
// states of one machine read and write across transitions (speeds, targets,
// cooldowns). Hooks run single-threaded, but outside systems may inspect the
// blackboard from other goroutines, hence the lock.
type Blackboard struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewBlackboard creates an empty blackboard.
func NewBlackboard() *Blackboard {
	return &Blackboard{data: make(map[string]any)}
}

// Get retrieves a value by key. Returns nil if the key does not exist.
func (b *Blackboard) Get(key string) any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.data[key]
}

// Set stores a value by key.
func (b *Blackboard) Set(key string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = value
}

// Delete removes a key.
func (b *Blackboard) Delete(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
}

// Snapshot returns a defensive copy of all data; modifications to the
// returned map do not affect the blackboard.
func (b *Blackboard) Snapshot() map[string]any {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string]any, len(b.data))
	for k, v := range b.data {
		out[k] = v
	}
	return out
}

// Restore atomically replaces all data.
func (b *Blackboard) Restore(data map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if data == nil {
		data = make(map[string]any)
	}
	b.data = data
}
