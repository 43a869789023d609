// Package observability holds the Prometheus collectors and OpenTelemetry
// tracer shared across the service.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jobboard_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ApplicationsSubmitted counts applications accepted by the ledger.
	ApplicationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobboard_applications_submitted_total",
		Help: "Total number of job applications submitted",
	})

	// LoginAttempts counts login attempts by outcome.
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_login_attempts_total",
		Help: "Total number of login attempts by result",
	}, []string{"result"})

	// CacheLookups counts cache-aside lookups by cache name and outcome.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_cache_lookups_total",
		Help: "Total number of cache lookups by cache and result",
	}, []string{"cache", "result"})
)

// Login attempt results.
const (
	LoginSuccess      = "success"
	LoginUnknownEmail = "unknown_email"
	LoginRoleMismatch = "role_mismatch"
	LoginBadPassword  = "bad_password"
	LoginError        = "error"
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	if table == "" {
		table = "unknown"
	}
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}
