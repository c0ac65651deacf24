package cache

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type cacheMetrics struct {
	created  metric.Int64Counter
	evicted  metric.Int64Counter
	deferred metric.Int64Counter
	locks    metric.Int64Counter
}

func newCacheMetrics(meter metric.Meter, logger *slog.Logger) cacheMetrics {
	counter := func(name, description string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(description))
		if err != nil {
			logger.Error("failed to create cache counter", "name", name, "error", err)
			return noop.Int64Counter{}
		}
		return c
	}

	return cacheMetrics{
		created:  counter("navstack.cache.created", "Surface cache entries created"),
		evicted:  counter("navstack.cache.evicted", "Surface cache entries evicted, by reason"),
		deferred: counter("navstack.cache.deferred_evictions", "Evictions postponed because the entry was locked"),
		locks:    counter("navstack.cache.lock_ops", "Lock and unlock calls, by op"),
	}
}
