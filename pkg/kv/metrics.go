package kv

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mountCacheHits         prometheus.Counter
	mountCacheMisses       prometheus.Counter
	mountResolutionDenied  prometheus.Counter
	mountResolutionFailed  prometheus.Counter

	metricsOnce       sync.Once
	metricsRegistered bool
)

// InitMetrics registers the resolver's Prometheus metrics with the default
// registry. Call once at startup if metrics are wanted; without it all
// recording is a no-op.
func InitMetrics() {
	metricsOnce.Do(func() {
		mountCacheHits = promauto.NewCounter(prometheus.CounterOpts{
			Name: "vaultkv_mount_cache_hits_total",
			Help: "Total number of mount info lookups served from the cache",
		})

		mountCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
			Name: "vaultkv_mount_cache_misses_total",
			Help: "Total number of mount info lookups requiring a remote resolution",
		})

		mountResolutionDenied = promauto.NewCounter(prometheus.CounterOpts{
			Name: "vaultkv_mount_resolution_denied_total",
			Help: "Total number of mount resolutions denied by policy (HTTP 403)",
		})

		mountResolutionFailed = promauto.NewCounter(prometheus.CounterOpts{
			Name: "vaultkv_mount_resolution_failures_total",
			Help: "Total number of mount resolutions failing with a non-policy error",
		})

		metricsRegistered = true
	})
}

func recordMountCacheHit() {
	if !metricsRegistered || mountCacheHits == nil {
		return
	}
	mountCacheHits.Inc()
}

func recordMountCacheMiss() {
	if !metricsRegistered || mountCacheMisses == nil {
		return
	}
	mountCacheMisses.Inc()
}

func recordMountResolutionDenied() {
	if !metricsRegistered || mountResolutionDenied == nil {
		return
	}
	mountResolutionDenied.Inc()
}

func recordMountResolutionFailure() {
	if !metricsRegistered || mountResolutionFailed == nil {
		return
	}
	mountResolutionFailed.Inc()
}
