// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScansStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadgen_scans_started_total",
			Help: "Total number of lead scans started",
		},
		[]string{"category"},
	)

	ScansCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadgen_scans_completed_total",
			Help: "Total number of lead scans finished, by outcome",
		},
		[]string{"category", "status"},
	)

	ScanDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leadgen_scan_duration_seconds",
			Help:    "Duration of a full scan stream in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"category"},
	)

	LeadsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadgen_leads_emitted_total",
			Help: "Total number of lead events written to streams",
		},
		[]string{"category"},
	)

	ProviderCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadgen_provider_calls_total",
			Help: "Total calls to the places provider, by endpoint",
		},
		[]string{"endpoint"},
	)

	ProviderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadgen_provider_errors_total",
			Help: "Total failed calls to the places provider, by endpoint",
		},
		[]string{"endpoint"},
	)
)
