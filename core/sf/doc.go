// Package sf provides a generic single-flight mechanism for deduplicating
// concurrent function calls with the same key.
//
// Single-flight ensures that only one execution of a function is in-flight
// for a given key at a time. If multiple goroutines call [Singleflight.Do]
// with the same key concurrently, only the first call executes the function;
// subsequent callers block until the first call completes and then receive
// the same result.
//
// Inside this module it backs the cache manager's GetOrSet: a miss stampede for
// one key collapses into a single factory invocation instead of one per
// caller.
//
// # Usage
//
//	flight := sf.New[string]()
//
//	// Concurrent calls with the same key execute fn only once.
//	doc, err := flight.Do("doc:42", func() (string, error) {
//	    return generate(ctx, 42)
//	})
//
// The generic type parameter T allows type-safe returns without casting.
package sf
