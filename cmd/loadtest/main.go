package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/codewandler/tcache-go/core/cache"
	"github.com/codewandler/tcache-go/core/keys"
)

// === Config ===

var (
	logLevel = slog.LevelInfo
	workers  = getEnvInt("WORKERS", 8)
	keySpace = getEnvInt("KEYS", 10_000)
	ops      = getEnvInt("N", 200_000)
	maxSize  = getEnvInt("MAX_SIZE", 5_000)
	ttl      = getEnvDuration("TTL", 30*time.Second)
)

func getEnv(key, fallback string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, fmt.Sprintf("%d", fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, fallback.String()))
	if err != nil {
		return fallback
	}
	return v
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	store, err := cache.New[string](cache.Options{
		TTL:             ttl,
		MaxSize:         maxSize,
		CleanupInterval: time.Second,
		Name:            "loadtest",
		Log:             log,
	})
	if err != nil {
		log.Error("create store", slog.Any("error", err))
		os.Exit(1)
	}
	defer store.Close()

	m := cache.NewManager(store)

	log.Info("starting load",
		slog.Int("workers", workers),
		slog.Int("ops", ops),
		slog.Int("key_space", keySpace),
		slog.Int("max_size", maxSize),
	)

	start := time.Now()

	var g errgroup.Group
	perWorker := ops / workers
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			for i := 0; i < perWorker; i++ {
				key := keys.Join("load", rng.Intn(keySpace))
				switch rng.Intn(10) {
				case 0:
					if err := m.Set(key, "payload"); err != nil {
						return err
					}
				case 1:
					m.Delete(key)
				default:
					if _, err := m.GetOrSet(key, func() (string, error) {
						return "payload", nil
					}); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("load failed", slog.Any("error", err))
		os.Exit(1)
	}

	elapsed := time.Since(start)
	st := m.Stats()

	log.Info("done",
		slog.Duration("elapsed", elapsed),
		slog.Float64("ops_per_sec", float64(ops)/elapsed.Seconds()),
		slog.Uint64("hits", st.Hits),
		slog.Uint64("misses", st.Misses),
		slog.Float64("hit_rate", st.HitRate),
		slog.Int("entries", st.Entries),
		slog.Int("memory_bytes", st.MemoryBytes),
	)
}
