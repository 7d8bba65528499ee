// Package cache provides a generic in-process key-value cache with per-entry
// TTL, capacity-bounded eviction and hit/miss statistics.
//
// The package has two layers:
//
//   - [Store]: the authoritative entry storage. Enforces TTL expiry (lazily on
//     access, plus a periodic background sweep), evicts the least-recently-
//     accessed entry when full, and tracks hit/miss counters.
//   - [Manager]: the convenience layer applications talk to. Adds memoizing
//     [Manager.GetOrSet] and batch/pattern operations on top of exactly one
//     Store.
//
// # Usage
//
//	store, err := cache.New[string](cache.Options{
//	    TTL:             5 * time.Minute,
//	    MaxSize:         1000,
//	    CleanupInterval: time.Minute,
//	})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	m := cache.NewManager(store)
//	doc, err := m.GetOrSet("doc:42", func() (string, error) {
//	    return generate(ctx, 42)
//	})
//
// # Expiry
//
// An entry whose TTL has passed is logically absent even while still held in
// memory: Get and Exists remove it on access and report a miss. The sweep
// goroutine is best-effort housekeeping that reclaims entries nobody touches;
// correctness never depends on it having run.
//
// # Concurrency
//
// A Store is safe for concurrent use. Lookups share a read lock on the fast
// path; all mutation (including lazy expiry and the sweep) is serialized
// behind a single write lock. GetOrSet runs its factory outside the store's
// lock and deduplicates concurrent calls for the same key (single-flight).
package cache
