package cache

import "time"

// Entry is one cached item together with its bookkeeping metadata.
// Entries are owned by their Store and only ever mutated under its lock.
type Entry[V any] struct {
	Key            string
	Value          V
	CreatedAt      time.Time
	ExpiresAt      time.Time
	AccessCount    uint64
	LastAccessedAt time.Time
}

// live reports whether the entry has not expired at now.
func (e *Entry[V]) live(now time.Time) bool {
	return !now.After(e.ExpiresAt)
}
