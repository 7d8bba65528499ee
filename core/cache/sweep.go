package cache

import (
	"context"
	"log/slog"
	"time"
)

// sweep periodically removes expired entries. It is best-effort
// housekeeping for entries nobody reads anymore; lazy expiry on Get and
// Exists remains the source of truth.
func (s *Store[V]) sweep(ctx context.Context, every time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.mu.Lock()
			removed := s.removeExpiredLocked(now)
			n := len(s.entries)
			s.mu.Unlock()

			if removed > 0 {
				s.metrics.Entries(s.name, n)
				s.log.Debug("sweep removed expired entries", slog.Int("removed", removed))
			}
		}
	}
}

// removeExpiredLocked removes all expired entries and returns how many.
// O(n) full scan, intentionally simple.
func (s *Store[V]) removeExpiredLocked(now time.Time) int {
	removed := 0
	for key, e := range s.entries {
		if !e.live(now) {
			delete(s.entries, key)
			s.metrics.Expiration(s.name)
			removed++
		}
	}
	return removed
}
