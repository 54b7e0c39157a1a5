package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// UploadsTotal counts media uploads by bucket and outcome.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_uploads_total",
		Help: "Total number of media uploads by bucket and outcome",
	}, []string{"bucket", "outcome"})

	// UploadBytes records the size distribution of accepted uploads.
	UploadBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skillswap_upload_bytes",
		Help:    "Size in bytes of accepted media uploads",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	}, []string{"bucket"})

	// LoginsTotal counts login attempts by outcome (ok, not_found, bad_password).
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_logins_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})
)
