package cache

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager[string] {
	t.Helper()
	return NewManager(newTestStore(t, Options{}))
}

func TestManager_GetOrSet(t *testing.T) {
	m := newTestManager(t)

	calls := 0
	factory := func() (string, error) {
		calls++
		return "computed", nil
	}

	v, err := m.GetOrSet("k", factory)
	require.NoError(t, err)
	assert.Equal(t, "computed", v)

	v, err = m.GetOrSet("k", factory)
	require.NoError(t, err)
	assert.Equal(t, "computed", v)

	assert.Equal(t, 1, calls)
}

func TestManager_GetOrSet_TTL(t *testing.T) {
	m := newTestManager(t)

	var calls atomic.Int32
	factory := func() (string, error) {
		calls.Add(1)
		return "v", nil
	}

	_, err := m.GetOrSet("k", factory, WithTTL(30*time.Millisecond))
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	_, err = m.GetOrSet("k", factory, WithTTL(30*time.Millisecond))
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
}

func TestManager_GetOrSet_FactoryError(t *testing.T) {
	m := newTestManager(t)

	boom := errors.New("generation failed")
	_, err := m.GetOrSet("k", func() (string, error) {
		return "", boom
	})
	require.ErrorIs(t, err, boom)

	// Nothing may be stored for the key after a factory failure.
	assert.False(t, m.Exists("k"))

	v, err := m.GetOrSet("k", func() (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestManager_GetOrSet_SingleFlight(t *testing.T) {
	m := newTestManager(t)

	var calls atomic.Int32
	release := make(chan struct{})
	factory := func() (string, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}

	const goroutines = 20

	var started, done sync.WaitGroup
	results := make([]string, goroutines)
	for i := 0; i < goroutines; i++ {
		started.Add(1)
		done.Add(1)
		go func(i int) {
			defer done.Done()
			started.Done()
			v, err := m.GetOrSet("k", factory)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	started.Wait()
	time.Sleep(20 * time.Millisecond) // let all callers reach the flight
	close(release)
	done.Wait()

	assert.Equal(t, int32(1), calls.Load(), "concurrent calls must share one factory invocation")
	for _, v := range results {
		assert.Equal(t, "shared", v)
	}
}

func TestManager_GetMany(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Set("a", "1"))
	require.NoError(t, m.Set("b", "2"))

	got := m.GetMany([]string{"a", "b", "missing"})
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, got)

	// The miss for "missing" is counted like any other get.
	assert.Equal(t, uint64(1), m.Stats().Misses)
}

func TestManager_SetMany(t *testing.T) {
	m := newTestManager(t)

	err := m.SetMany([]Item[string]{
		{Key: "a", Value: "1"},
		{Key: "b", Value: "2", TTL: 30 * time.Millisecond},
	})
	require.NoError(t, err)

	assert.True(t, m.Exists("a"))
	assert.True(t, m.Exists("b"))

	time.Sleep(50 * time.Millisecond)

	assert.True(t, m.Exists("a"))
	assert.False(t, m.Exists("b"))
}

func TestManager_DeleteMany(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Set("a", "1"))
	require.NoError(t, m.Set("b", "2"))

	assert.Equal(t, 2, m.DeleteMany([]string{"a", "b", "missing"}))
	assert.Equal(t, 0, m.Len())
}

func TestManager_DeleteByPattern(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Set("user:1", "a"))
	require.NoError(t, m.Set("user:2", "b"))
	require.NoError(t, m.Set("project:1", "c"))

	assert.Equal(t, 2, m.DeleteByPattern("user:*"))
	assert.ElementsMatch(t, []string{"project:1"}, m.Keys())
}

func TestManager_Passthrough(t *testing.T) {
	store := newTestStore(t, Options{})
	m := NewManager(store)

	require.NoError(t, m.Set("a", "1"))

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", v)
	assert.True(t, m.Exists("a"))
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, store.Stats(), m.Stats())
	assert.ElementsMatch(t, store.Keys(), m.Keys())

	assert.True(t, m.Delete("a"))

	require.NoError(t, m.Set("b", "2"))
	m.Clear()
	assert.Equal(t, 0, m.Len())

	m.ResetStats()
	assert.Equal(t, uint64(0), m.Stats().Hits)
}

func TestManager_GetOrSet_Closed(t *testing.T) {
	s, err := New[string](Options{TTL: time.Minute, MaxSize: 10, CleanupInterval: time.Minute})
	require.NoError(t, err)
	m := NewManager(s)
	require.NoError(t, m.Close())

	_, err = m.GetOrSet("k", func() (string, error) {
		return fmt.Sprintf("computed at %s", time.Now()), nil
	})
	assert.ErrorIs(t, err, ErrClosed)
}
