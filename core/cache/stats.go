package cache

import (
	"time"

	"github.com/codewandler/tcache-go/internal/codec"
)

// Stats is a point-in-time snapshot of a store's counters.
type Stats struct {
	Hits    uint64
	Misses  uint64
	HitRate float64

	// Entries is the number of live entries at snapshot time.
	Entries int

	// MemoryBytes estimates the footprint of live entries from their
	// JSON-serialized size. It is an approximation, not an accounting.
	MemoryBytes int
}

// Stats returns a consistent snapshot of the store's statistics.
func (s *Store[V]) Stats() Stats {
	now := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
	}
	if total := st.Hits + st.Misses; total > 0 {
		st.HitRate = float64(st.Hits) / float64(total)
	}
	for _, e := range s.entries {
		if !e.live(now) {
			continue
		}
		st.Entries++
		st.MemoryBytes += len(e.Key) + valueSize(e.Value)
	}
	return st
}

// ResetStats zeroes the hit/miss counters without touching entries.
func (s *Store[V]) ResetStats() {
	s.hits.Store(0)
	s.misses.Store(0)
}

func valueSize(v any) int {
	data, err := codec.JSON.Marshal(v)
	if err != nil {
		return 0
	}
	return len(data)
}
