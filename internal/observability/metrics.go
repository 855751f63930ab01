package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command, excluding redis.Nil.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photogram_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// StorageOperationLatency records backend call latency by backend and operation.
	StorageOperationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "photogram_storage_operation_latency_seconds",
		Help:    "Storage backend operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "operation"})

	// StorageErrors counts failed backend calls. Missing keys are not errors.
	StorageErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photogram_storage_errors_total",
		Help: "Total number of storage backend errors",
	}, []string{"backend", "operation"})

	// MutationsTotal counts mutation calls by operation and outcome.
	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photogram_mutations_total",
		Help: "Total number of mutation operations by outcome",
	}, []string{"operation", "outcome"})

	// StoriesViewed counts stories marked as viewed.
	StoriesViewed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photogram_stories_viewed_total",
		Help: "Total number of stories marked as viewed",
	})
)

// TrackStorage returns a function that records latency, and an error when
// the call failed. Use with defer.
func TrackStorage(backend, operation string) func(err error) {
	start := time.Now()
	return func(err error) {
		StorageOperationLatency.WithLabelValues(backend, operation).Observe(time.Since(start).Seconds())
		if err != nil {
			StorageErrors.WithLabelValues(backend, operation).Inc()
		}
	}
}

// RecordMutation counts a mutation call as "ok", "invalid" or "error".
func RecordMutation(operation, outcome string) {
	MutationsTotal.WithLabelValues(operation, outcome).Inc()
}
