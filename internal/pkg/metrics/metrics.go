// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "site_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)
)

var (
	// MediaUploads counts upload attempts by entity and outcome.
	MediaUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_media_uploads_total",
			Help: "Media uploads by entity and result",
		},
		[]string{"entity", "result"},
	)

	// CompensatingDeletes counts uploads removed because persistence failed.
	CompensatingDeletes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_media_compensating_deletes_total",
			Help: "Uploaded objects deleted after a failed write",
		},
		[]string{"entity", "result"},
	)

	// CleanupFailures counts best-effort media deletions that failed. Each one
	// may leave an orphaned object behind.
	CleanupFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_media_cleanup_failures_total",
			Help: "Best-effort media deletions that failed",
		},
		[]string{"entity", "reason"},
	)

	// OrphansKept counts stored objects left in place after a record moved to
	// an external URL.
	OrphansKept = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_media_orphans_kept_total",
			Help: "Stored objects left unreferenced by the keep orphan policy",
		},
		[]string{"entity"},
	)

	// LoginAttempts counts admin logins by result.
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_auth_login_attempts_total",
			Help: "Admin login attempts by result",
		},
		[]string{"result"},
	)
)
