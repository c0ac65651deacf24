package cache_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/BrandonKowalski/navstack/pkg/navstack/cache"
	naverrors "github.com/BrandonKowalski/navstack/pkg/navstack/errors"
	"github.com/BrandonKowalski/navstack/pkg/navstack/flatten"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type texture struct {
	name      string
	destroyed bool
}

func (t *texture) Destroy() { t.destroyed = true }

func newCache() *cache.Cache {
	return cache.New(cache.WithLogger(quiet))
}

func create(t *testing.T, c *cache.Cache, keys ...string) map[string]*texture {
	t.Helper()
	out := make(map[string]*texture, len(keys))
	for _, key := range keys {
		tex := &texture{name: key}
		_, err := c.GetOrCreate(key, func() (any, error) { return tex, nil })
		require.NoError(t, err)
		out[key] = tex
	}
	return out
}

func live(ids ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

// requireDefect asserts fn panics with a DefectError wrapping target.
func requireDefect(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, naverrors.IsDefect(err))
		require.ErrorIs(t, err, target)
	}()
	fn()
}

func TestGetOrCreate(t *testing.T) {
	c := newCache()
	calls := 0
	factory := func() (any, error) {
		calls++
		return calls, nil
	}

	first, err := c.GetOrCreate("a", factory)
	require.NoError(t, err)
	second, err := c.GetOrCreate("a", factory)
	require.NoError(t, err)

	require.Same(t, first, second)
	require.Equal(t, 1, calls)
	require.Equal(t, 1, first.Output())
	require.Equal(t, "a", first.Key())

	t.Run("factory error leaves no entry", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := c.GetOrCreate("b", func() (any, error) { return nil, boom })
		require.ErrorIs(t, err, boom)
		_, exists := c.Get("b")
		require.False(t, exists)
	})
}

func TestLockUnlock(t *testing.T) {
	c := newCache()
	create(t, c, "a")

	c.Lock("a")
	c.Lock("a")
	require.Equal(t, 2, c.LockCount("a"))
	c.Unlock("a")
	c.Unlock("a")
	require.Equal(t, 0, c.LockCount("a"))

	t.Run("unlock below zero is a defect", func(t *testing.T) {
		requireDefect(t, naverrors.ErrLockImbalance, func() { c.Unlock("a") })
		require.Equal(t, 0, c.LockCount("a"))
	})

	t.Run("lock of unknown key is a defect", func(t *testing.T) {
		requireDefect(t, naverrors.ErrUnknownEntry, func() { c.Lock("missing") })
	})
}

func TestReconcile(t *testing.T) {
	t.Run("evicts invalidated and unreferenced entries", func(t *testing.T) {
		c := newCache()
		tex := create(t, c, "tabs-wrapper", "tabs-content-0", "tabs-content-1", "old", "kept")

		evicted := c.Reconcile(live("tabs-wrapper", "tabs-content-1"), flatten.CachingHints{
			CacheableIDs:   []string{"kept", "tabs-content-1"},
			InvalidatedIDs: []string{"tabs-content-0"},
		})

		require.Equal(t, []string{"old", "tabs-content-0"}, evicted)
		require.Equal(t, []string{"kept", "tabs-content-1", "tabs-wrapper"}, c.Keys())
		require.True(t, tex["old"].destroyed)
		require.True(t, tex["tabs-content-0"].destroyed)
		require.False(t, tex["tabs-wrapper"].destroyed)
	})

	t.Run("locked entry waits for its last unlock", func(t *testing.T) {
		c := newCache()
		tex := create(t, c, "tabs-content-0", "tabs-content-1")
		c.Lock("tabs-content-0")
		c.Lock("tabs-content-0")

		evicted := c.Reconcile(live("tabs-content-1"), flatten.CachingHints{
			CacheableIDs:   []string{"tabs-content-1"},
			InvalidatedIDs: []string{"tabs-content-0"},
		})
		require.Empty(t, evicted)

		entry, exists := c.Get("tabs-content-0")
		require.True(t, exists)
		require.True(t, entry.EvictPending())
		require.Equal(t, cache.Stats{Entries: 2, Locked: 1, Pending: 1}, c.Stats())

		c.Unlock("tabs-content-0")
		_, exists = c.Get("tabs-content-0")
		require.True(t, exists)

		c.Unlock("tabs-content-0")
		_, exists = c.Get("tabs-content-0")
		require.False(t, exists)
		require.True(t, tex["tabs-content-0"].destroyed)
	})

	t.Run("becoming live again cancels a deferred eviction", func(t *testing.T) {
		c := newCache()
		create(t, c, "a")
		c.Lock("a")

		c.Reconcile(live(), flatten.CachingHints{})
		entry, _ := c.Get("a")
		require.True(t, entry.EvictPending())

		c.Reconcile(live("a"), flatten.CachingHints{CacheableIDs: []string{"a"}})
		require.False(t, entry.EvictPending())

		c.Unlock("a")
		_, exists := c.Get("a")
		require.True(t, exists)
	})
}

func TestReconcileNeverEvictsLockedEntries(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("locked entries survive any hints", prop.ForAll(
		func(locks []int, invalid []bool, alive []bool) bool {
			c := newCache()
			hints := flatten.CachingHints{}
			liveSet := live()
			for i, n := range locks {
				key := fmt.Sprintf("k%03d", i)
				if _, err := c.GetOrCreate(key, func() (any, error) { return i, nil }); err != nil {
					return false
				}
				for j := 0; j < n; j++ {
					c.Lock(key)
				}
				if i < len(invalid) && invalid[i] {
					hints.InvalidatedIDs = append(hints.InvalidatedIDs, key)
				}
				if i < len(alive) && alive[i] {
					liveSet[key] = struct{}{}
				}
			}

			c.Reconcile(liveSet, hints)

			for i, n := range locks {
				if n == 0 {
					continue
				}
				entry, exists := c.Get(fmt.Sprintf("k%03d", i))
				if !exists || entry.LockCount() != n {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 3)),
		gen.SliceOf(gen.Bool()),
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}

func TestDestroy(t *testing.T) {
	c := newCache()
	tex := create(t, c, "a", "b")
	c.Lock("a")

	c.Destroy()

	require.Zero(t, c.Len())
	require.True(t, tex["a"].destroyed)
	require.True(t, tex["b"].destroyed)
}

func TestDiscard(t *testing.T) {
	c := newCache()
	tex := create(t, c, "a", "b")
	c.Lock("a")

	require.False(t, c.Discard("a"))
	require.False(t, tex["a"].destroyed)

	require.True(t, c.Discard("b"))
	require.True(t, tex["b"].destroyed)
	require.False(t, c.Discard("b"))
	require.Equal(t, []string{"a"}, c.Keys())
}

func TestMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	c := cache.New(cache.WithLogger(quiet), cache.WithMeter(provider.Meter("test")))

	create(t, c, "a", "b", "c")
	c.Lock("a")
	c.Reconcile(live(), flatten.CachingHints{})
	c.Unlock("a")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	totals := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", m.Name)
			for _, dp := range sum.DataPoints {
				totals[m.Name] += dp.Value
			}
		}
	}

	require.Equal(t, int64(3), totals["navstack.cache.created"])
	require.Equal(t, int64(3), totals["navstack.cache.evicted"])
	require.Equal(t, int64(1), totals["navstack.cache.deferred_evictions"])
	require.Equal(t, int64(2), totals["navstack.cache.lock_ops"])
}
