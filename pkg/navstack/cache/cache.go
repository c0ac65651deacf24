// Package cache keeps rendered surface output alive across flatten passes.
//
// Entries are created lazily on first reference and reference counted with
// Lock/Unlock. Reconcile, called once per flatten pass, evicts what the
// caching hints no longer need; a locked entry is never evicted, its
// eviction is deferred until the last Unlock.
//
// A Cache has a single writer, the render loop. It is not safe for
// concurrent mutation. Entry output is never modified after creation, so
// reading it from several passes within a frame needs no synchronization.
package cache

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	naverrors "github.com/BrandonKowalski/navstack/pkg/navstack/errors"
	"github.com/BrandonKowalski/navstack/pkg/navstack/flatten"
	"github.com/BrandonKowalski/navstack/pkg/navstack/internal"
)

// Destroyer is implemented by outputs holding resources (textures, buffers)
// that must be released on eviction.
type Destroyer interface {
	Destroy()
}

// Factory renders the output for a new entry.
type Factory func() (any, error)

// Entry is one cached render output.
type Entry struct {
	key          string
	output       any
	locks        int
	evictPending bool
}

func (e *Entry) Key() string    { return e.key }
func (e *Entry) Output() any    { return e.output }
func (e *Entry) LockCount() int { return e.locks }

// EvictPending reports whether Reconcile wanted this entry gone while it
// was locked.
func (e *Entry) EvictPending() bool { return e.evictPending }

// Stats is a point-in-time summary of the cache.
type Stats struct {
	Entries int
	Locked  int
	Pending int
}

// Cache stores render output keyed by surface id.
type Cache struct {
	entries map[string]*Entry
	logger  *slog.Logger
	meter   metric.Meter
	metrics cacheMetrics
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger. Defaults to the navstack internal logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// WithMeter sets the meter used for cache metrics. Defaults to the global
// OpenTelemetry meter provider.
func WithMeter(meter metric.Meter) Option {
	return func(c *Cache) {
		c.meter = meter
	}
}

// New creates an empty Cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]*Entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = internal.GetInternalLogger()
	}
	if c.meter == nil {
		c.meter = otel.Meter("github.com/BrandonKowalski/navstack/cache")
	}
	c.metrics = newCacheMetrics(c.meter, c.logger)
	return c
}

// GetOrCreate returns the entry for key, rendering it with factory on first
// access. A factory error leaves the cache unchanged.
func (c *Cache) GetOrCreate(key string, factory Factory) (*Entry, error) {
	if e, exists := c.entries[key]; exists {
		return e, nil
	}

	output, err := factory()
	if err != nil {
		return nil, err
	}

	e := &Entry{key: key, output: output}
	c.entries[key] = e
	c.metrics.created.Add(context.Background(), 1)
	return e, nil
}

// Get returns the entry for key if it exists.
func (c *Cache) Get(key string) (*Entry, bool) {
	e, exists := c.entries[key]
	return e, exists
}

// Lock increments the lock count of key. Locking an entry that was never
// created is a defect and panics.
func (c *Cache) Lock(key string) {
	e, exists := c.entries[key]
	if !exists {
		panic(naverrors.NewDefectError("lock", key, naverrors.ErrUnknownEntry))
	}
	e.locks++
	c.metrics.locks.Add(context.Background(), 1, metric.WithAttributes(attribute.String("op", "lock")))
}

// Unlock decrements the lock count of key. Unlocking below zero is a defect
// and panics. The last Unlock of an entry Reconcile wanted gone evicts it.
func (c *Cache) Unlock(key string) {
	e, exists := c.entries[key]
	if !exists {
		panic(naverrors.NewDefectError("unlock", key, naverrors.ErrUnknownEntry))
	}
	if e.locks == 0 {
		panic(naverrors.NewDefectError("unlock", key, naverrors.ErrLockImbalance))
	}
	e.locks--
	c.metrics.locks.Add(context.Background(), 1, metric.WithAttributes(attribute.String("op", "unlock")))

	if e.locks == 0 && e.evictPending {
		c.evict(e, "deferred")
	}
}

// LockCount returns the lock count of key, or 0 if absent.
func (c *Cache) LockCount(key string) int {
	if e, exists := c.entries[key]; exists {
		return e.locks
	}
	return 0
}

// Reconcile applies the hints of one flatten pass. live holds the ids of the
// pass's surfaces. An entry is evicted when it is invalidated, or when it is
// neither live nor cacheable; if it is locked the eviction waits for the
// final Unlock. Returns the keys evicted now, sorted.
func (c *Cache) Reconcile(live map[string]struct{}, hints flatten.CachingHints) []string {
	var evicted []string

	for _, key := range c.Keys() {
		e := c.entries[key]

		var reason string
		_, isLive := live[key]
		switch {
		case hints.IsInvalidated(key):
			reason = "invalidated"
		case !isLive && !hints.IsCacheable(key):
			reason = "unreferenced"
		default:
			e.evictPending = false
			continue
		}

		if e.locks > 0 {
			if !e.evictPending {
				e.evictPending = true
				c.metrics.deferred.Add(context.Background(), 1)
				c.logger.Debug("eviction deferred", "key", key, "reason", reason, "locks", e.locks)
			}
			continue
		}

		c.evict(e, reason)
		evicted = append(evicted, key)
	}

	return evicted
}

// Discard evicts key right away if it exists and is unlocked. Reports
// whether an entry was evicted.
func (c *Cache) Discard(key string) bool {
	e, exists := c.entries[key]
	if !exists || e.locks > 0 {
		return false
	}
	c.evict(e, "discarded")
	return true
}

// Keys returns the cached keys, sorted.
func (c *Cache) Keys() []string {
	keys := slices.Collect(maps.Keys(c.entries))
	slices.Sort(keys)
	return keys
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Stats summarizes the cache.
func (c *Cache) Stats() Stats {
	s := Stats{Entries: len(c.entries)}
	for _, e := range c.entries {
		if e.locks > 0 {
			s.Locked++
		}
		if e.evictPending {
			s.Pending++
		}
	}
	return s
}

// Destroy releases every entry regardless of locks. Use at teardown only.
func (c *Cache) Destroy() {
	for _, key := range c.Keys() {
		c.evict(c.entries[key], "destroy")
	}
}

func (c *Cache) evict(e *Entry, reason string) {
	if d, ok := e.output.(Destroyer); ok {
		d.Destroy()
	}
	delete(c.entries, e.key)
	c.metrics.evicted.Add(context.Background(), 1, metric.WithAttributes(attribute.String("reason", reason)))
	c.logger.Debug("surface evicted", "key", e.key, "reason", reason)
}
