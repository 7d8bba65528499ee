package cache

import (
	"fmt"
	"log/slog"
	"time"
)

// Options configures a Store. TTL, MaxSize and CleanupInterval are required
// and validated by [New]; invalid values are rejected, never coerced.
type Options struct {
	// TTL is the default time-to-live applied when Set is called without
	// WithTTL. Must be > 0.
	TTL time.Duration

	// MaxSize bounds the number of stored entries. Inserting into a full
	// store evicts the least-recently-accessed entry. Must be > 0.
	MaxSize int

	// CleanupInterval is the period of the background sweep that removes
	// expired entries. Must be > 0.
	CleanupInterval time.Duration

	// Name identifies the store in logs and metrics.
	// Defaults to "cache-<nanoid>".
	Name string

	// Log receives debug output. Defaults to slog.Default().
	Log *slog.Logger

	// Metrics receives cache events. Defaults to a no-op implementation.
	Metrics Metrics
}

func (o Options) validate() error {
	if o.TTL <= 0 {
		return fmt.Errorf("cache: ttl must be > 0, got %s", o.TTL)
	}
	if o.MaxSize <= 0 {
		return fmt.Errorf("cache: max size must be > 0, got %d", o.MaxSize)
	}
	if o.CleanupInterval <= 0 {
		return fmt.Errorf("cache: cleanup interval must be > 0, got %s", o.CleanupInterval)
	}
	return nil
}

// SetOptions holds per-call overrides for Set.
type SetOptions struct {
	TTL time.Duration
}

type SetOption func(*SetOptions)

// WithTTL overrides the store's default TTL for a single Set.
func WithTTL(ttl time.Duration) SetOption {
	return func(o *SetOptions) {
		o.TTL = ttl
	}
}
