package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrClosed is returned by mutating operations after Close.
var ErrClosed = errors.New("cache: store is closed")

// Store is a capacity- and TTL-bounded in-memory key-value store.
// The zero value is not usable; construct with [New].
type Store[V any] struct {
	name    string
	log     *slog.Logger
	metrics Metrics

	ttl     time.Duration
	maxSize int

	mu      sync.RWMutex
	entries map[string]*Entry[V]
	closed  bool

	hits   atomic.Uint64
	misses atomic.Uint64

	// Sweep goroutine ownership.
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Store and starts its background sweep.
func New[V any](opts Options) (*Store[V], error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Name == "" {
		opts.Name = fmt.Sprintf("cache-%s", gonanoid.Must(6))
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = NopMetrics()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Store[V]{
		name:    opts.Name,
		log:     opts.Log.With(slog.String("cache", opts.Name)),
		metrics: opts.Metrics,
		ttl:     opts.TTL,
		maxSize: opts.MaxSize,
		entries: make(map[string]*Entry[V]),
		cancel:  cancel,
	}

	s.wg.Add(1)
	go s.sweep(ctx, opts.CleanupInterval)

	return s, nil
}

// Name returns the store's identifier, as used in logs and metrics.
func (s *Store[V]) Name() string { return s.name }

// Set inserts or overwrites the entry for key. The store's default TTL
// applies unless overridden with [WithTTL]. When the store is full and key
// is not already present, the least-recently-accessed entry is evicted
// first. Set never counts as a hit or a miss.
func (s *Store[V]) Set(key string, val V, opts ...SetOption) error {
	o := SetOptions{TTL: s.ttl}
	for _, opt := range opts {
		opt(&o)
	}
	if o.TTL <= 0 {
		return fmt.Errorf("cache: ttl must be > 0, got %s", o.TTL)
	}

	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if _, ok := s.entries[key]; !ok && len(s.entries) >= s.maxSize {
		s.evictLocked(now)
	}

	s.entries[key] = &Entry[V]{
		Key:            key,
		Value:          val,
		CreatedAt:      now,
		ExpiresAt:      now.Add(o.TTL),
		LastAccessedAt: now,
	}
	s.metrics.Entries(s.name, len(s.entries))
	return nil
}

// Get returns the live value for key. A hit increments the entry's access
// count and refreshes its recency; a miss (absent or expired) is counted in
// the statistics. An expired entry is removed as part of this call.
func (s *Store[V]) Get(key string) (V, bool) {
	var zero V
	now := time.Now()

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return zero, false
	}
	if _, ok := s.entries[key]; !ok {
		s.mu.RUnlock()
		s.misses.Add(1)
		s.metrics.Miss(s.name)
		return zero, false
	}
	s.mu.RUnlock()

	// Both the hit path (access metadata) and the expired path (lazy
	// removal) mutate state, so take the write lock and re-check.
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		s.misses.Add(1)
		s.metrics.Miss(s.name)
		return zero, false
	}
	if !e.live(now) {
		s.removeExpiredEntryLocked(key)
		s.misses.Add(1)
		s.metrics.Miss(s.name)
		return zero, false
	}

	e.AccessCount++
	e.LastAccessedAt = now
	s.hits.Add(1)
	s.metrics.Hit(s.name)
	return e.Value, true
}

// Exists reports whether a live entry is present for key. Like Get it
// removes an expired entry on access, but it touches neither the hit/miss
// counters nor the entry's access metadata.
func (s *Store[V]) Exists(key string) bool {
	now := time.Now()

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return false
	}
	e, ok := s.entries[key]
	if !ok {
		s.mu.RUnlock()
		return false
	}
	if e.live(now) {
		s.mu.RUnlock()
		return true
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok = s.entries[key]
	if !ok {
		return false
	}
	if e.live(now) {
		// Overwritten since we dropped the read lock.
		return true
	}
	s.removeExpiredEntryLocked(key)
	return false
}

// Delete removes the entry for key and reports whether it was present.
// It has no effect on the hit/miss counters.
func (s *Store[V]) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	s.metrics.Entries(s.name, len(s.entries))
	return true
}

// Clear removes all entries and resets the hit/miss counters.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.entries = make(map[string]*Entry[V])
	s.hits.Store(0)
	s.misses.Store(0)
	s.metrics.Entries(s.name, 0)
}

// Keys returns all live keys in unspecified order.
func (s *Store[V]) Keys() []string {
	now := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.entries))
	for key, e := range s.entries {
		if e.live(now) {
			out = append(out, key)
		}
	}
	return out
}

// KeysMatching returns all live keys matching the glob pattern, where '*'
// matches zero or more characters and every other character is literal.
// The pattern is anchored to the full key.
func (s *Store[V]) KeysMatching(pattern string) []string {
	re := compileGlob(pattern)
	now := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []string
	for key, e := range s.entries {
		if e.live(now) && re.MatchString(key) {
			out = append(out, key)
		}
	}
	return out
}

// Len returns the number of live entries. Expired-but-unswept entries are
// excluded, consistent with Keys and Stats.
func (s *Store[V]) Len() int {
	now := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.entries {
		if e.live(now) {
			n++
		}
	}
	return n
}

// Close stops the background sweep and releases all entries. After Close,
// mutating operations return ErrClosed and lookups miss without touching
// the statistics. Close is safe to call more than once.
func (s *Store[V]) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	// Cancel outside the lock; the sweep needs the write lock to finish
	// its current pass.
	s.cancel()
	s.wg.Wait()

	s.mu.Lock()
	s.entries = make(map[string]*Entry[V])
	s.mu.Unlock()

	s.log.Debug("store closed")
	return nil
}

// evictLocked makes room for one insert. Expired entries are reclaimed
// first; only when none exist is a live entry evicted. The victim is the
// entry with the smallest LastAccessedAt, ties broken by key order so the
// choice is deterministic. This is an approximate LRU; callers must not
// depend on exact tie ordering.
func (s *Store[V]) evictLocked(now time.Time) {
	if s.removeExpiredLocked(now) > 0 {
		return
	}

	var victim *Entry[V]
	for _, e := range s.entries {
		if victim == nil ||
			e.LastAccessedAt.Before(victim.LastAccessedAt) ||
			(e.LastAccessedAt.Equal(victim.LastAccessedAt) && e.Key < victim.Key) {
			victim = e
		}
	}
	if victim == nil {
		return
	}

	delete(s.entries, victim.Key)
	s.metrics.Eviction(s.name)
	s.log.Debug("evicted entry", slog.String("key", victim.Key))
}

func (s *Store[V]) removeExpiredEntryLocked(key string) {
	delete(s.entries, key)
	s.metrics.Expiration(s.name)
	s.metrics.Entries(s.name, len(s.entries))
}
