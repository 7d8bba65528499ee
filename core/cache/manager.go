package cache

import (
	"time"

	"github.com/codewandler/tcache-go/core/sf"
)

// Item is one key/value pair for [Manager.SetMany]. A zero TTL uses the
// store's default.
type Item[V any] struct {
	Key   string
	Value V
	TTL   time.Duration
}

// Manager is the memoization and batch layer over exactly one [Store].
// It never maintains entries of its own and never bypasses the store's
// expiry or eviction rules.
type Manager[V any] struct {
	store  *Store[V]
	flight *sf.Singleflight[V]
}

// NewManager wraps store.
func NewManager[V any](store *Store[V]) *Manager[V] {
	return &Manager[V]{
		store:  store,
		flight: sf.New[V](),
	}
}

// GetOrSet returns the cached value for key, computing and storing it via
// fn on a miss. Concurrent calls for the same key share a single fn
// invocation (single-flight); fn always runs outside the store's lock, so
// a slow factory never blocks unrelated cache operations. A fn error
// propagates unchanged and nothing is stored for the key.
func (m *Manager[V]) GetOrSet(key string, fn func() (V, error), opts ...SetOption) (V, error) {
	if v, ok := m.store.Get(key); ok {
		return v, nil
	}
	return m.flight.Do(key, func() (V, error) {
		// The flight winner may have stored the value between our miss
		// and joining the flight.
		if v, ok := m.store.Get(key); ok {
			return v, nil
		}

		timer := m.store.metrics.LoadDuration(m.store.name)
		v, err := fn()
		timer.ObserveDuration()
		if err != nil {
			var zero V
			return zero, err
		}

		if err := m.store.Set(key, v, opts...); err != nil {
			var zero V
			return zero, err
		}
		return v, nil
	})
}

// GetMany performs an independent Get per key. Absent keys are omitted
// from the result; a miss for one key does not affect the others.
func (m *Manager[V]) GetMany(keys []string) map[string]V {
	out := make(map[string]V, len(keys))
	for _, key := range keys {
		if v, ok := m.store.Get(key); ok {
			out[key] = v
		}
	}
	return out
}

// SetMany performs a Set per item, in order. It is not atomic: the first
// error stops the walk and earlier items stay committed.
func (m *Manager[V]) SetMany(items []Item[V]) error {
	for _, it := range items {
		var opts []SetOption
		if it.TTL > 0 {
			opts = append(opts, WithTTL(it.TTL))
		}
		if err := m.store.Set(it.Key, it.Value, opts...); err != nil {
			return err
		}
	}
	return nil
}

// DeleteMany deletes each key and returns how many were actually present.
func (m *Manager[V]) DeleteMany(keys []string) int {
	n := 0
	for _, key := range keys {
		if m.store.Delete(key) {
			n++
		}
	}
	return n
}

// DeleteByPattern deletes all keys matching the glob pattern and returns
// the count. Enumeration and deletion are two separate steps: keys created
// or expiring in between are not handled atomically.
func (m *Manager[V]) DeleteByPattern(pattern string) int {
	return m.DeleteMany(m.store.KeysMatching(pattern))
}

// The remaining operations pass straight through to the store.

func (m *Manager[V]) Get(key string) (V, bool) { return m.store.Get(key) }

func (m *Manager[V]) Set(key string, val V, opts ...SetOption) error {
	return m.store.Set(key, val, opts...)
}

func (m *Manager[V]) Delete(key string) bool { return m.store.Delete(key) }

func (m *Manager[V]) Exists(key string) bool { return m.store.Exists(key) }

func (m *Manager[V]) Keys() []string { return m.store.Keys() }

func (m *Manager[V]) KeysMatching(pattern string) []string { return m.store.KeysMatching(pattern) }

func (m *Manager[V]) Len() int { return m.store.Len() }

func (m *Manager[V]) Stats() Stats { return m.store.Stats() }

func (m *Manager[V]) ResetStats() { m.store.ResetStats() }

func (m *Manager[V]) Clear() { m.store.Clear() }

func (m *Manager[V]) Close() error { return m.store.Close() }
