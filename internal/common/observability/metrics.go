// internal/common/observability/metrics.go
package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability exposes service-level meters through the OpenTelemetry
// Prometheus exporter, alongside the plain prometheus counters in
// internal/common/metrics.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	scanCounter   otelmetric.Int64Counter
	scanDuration  otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	scanCounter, _ := meter.Int64Counter(
		"scans.processed",
		otelmetric.WithDescription("Number of lead scans processed"),
	)

	scanDuration, _ := meter.Float64Histogram(
		"scans.duration",
		otelmetric.WithDescription("Lead scan duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		scanCounter:   scanCounter,
		scanDuration:  scanDuration,
	}
}

func (o *Observability) RecordScan(ctx context.Context, category, status string) {
	if o.scanCounter != nil {
		o.scanCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("category", category),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordScanDuration(ctx context.Context, duration time.Duration, status string) {
	if o.scanDuration != nil {
		o.scanDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = o.meterProvider.Shutdown(ctx)
	}
}
