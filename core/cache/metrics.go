package cache

import "github.com/codewandler/tcache-go/core/metrics"

// Metrics receives cache lifecycle events. Implementations must be safe for
// concurrent use. The name argument is the store's Name, so one Metrics
// instance can serve several stores.
type Metrics interface {
	// Hit is called when Get returns a live value.
	Hit(name string)
	// Miss is called when Get finds no live value.
	Miss(name string)
	// Eviction is called when a live entry is removed to make room.
	Eviction(name string)
	// Expiration is called when an expired entry is removed, lazily or
	// by the sweep.
	Expiration(name string)
	// Entries reports the number of physically stored entries after a
	// mutation.
	Entries(name string, n int)
	// LoadDuration times a factory invocation inside Manager.GetOrSet.
	LoadDuration(name string) metrics.Timer
}

type nopMetrics struct{}

func (nopMetrics) Hit(string)                        {}
func (nopMetrics) Miss(string)                       {}
func (nopMetrics) Eviction(string)                   {}
func (nopMetrics) Expiration(string)                 {}
func (nopMetrics) Entries(string, int)               {}
func (nopMetrics) LoadDuration(string) metrics.Timer { return metrics.NopTimer() }

// NopMetrics returns a Metrics implementation that ignores all events.
func NopMetrics() Metrics { return nopMetrics{} }

var _ Metrics = nopMetrics{}
