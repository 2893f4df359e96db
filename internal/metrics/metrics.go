// Package metrics holds the application's OpenTelemetry instruments and the
// Prometheus exporter that serves them.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "github.com/pkordes/trip-planner"

// Instruments are the counters and histograms recorded by the store and the
// HTTP layer. The zero value is not usable; build one with New or Noop.
type Instruments struct {
	mutations       metric.Int64Counter
	persistFailures metric.Int64Counter
	persistDuration metric.Float64Histogram
	cacheLookups    metric.Int64Counter
}

// New creates every instrument on a meter from mp.
func New(mp metric.MeterProvider) (*Instruments, error) {
	meter := mp.Meter(meterName)
	var (
		m   Instruments
		err error
	)

	m.mutations, err = meter.Int64Counter(
		"tripplanner_store_mutations",
		metric.WithDescription("Successful trip store mutations by operation"),
		metric.WithUnit("{mutation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("metrics.New: store_mutations: %w", err)
	}

	m.persistFailures, err = meter.Int64Counter(
		"tripplanner_store_persist_failures",
		metric.WithDescription("Writes of the trip collection that failed and stayed in memory only"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("metrics.New: persist_failures: %w", err)
	}

	m.persistDuration, err = meter.Float64Histogram(
		"tripplanner_store_persist_duration_seconds",
		metric.WithDescription("Time spent serialising and writing the trip collection"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("metrics.New: persist_duration: %w", err)
	}

	m.cacheLookups, err = meter.Int64Counter(
		"tripplanner_insights_cache_lookups",
		metric.WithDescription("Insights cache lookups by result (hit or miss)"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, fmt.Errorf("metrics.New: cache_lookups: %w", err)
	}

	return &m, nil
}

// Noop returns instruments that record nothing. Used by tests and by the CLI.
func Noop() *Instruments {
	m, err := New(noop.NewMeterProvider())
	if err != nil {
		// The noop provider never fails to create instruments.
		panic(err)
	}
	return m
}

// RecordMutation counts one successful store mutation.
func (m *Instruments) RecordMutation(ctx context.Context, op string) {
	m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

// RecordPersist records how long a collection write took and whether it failed.
func (m *Instruments) RecordPersist(ctx context.Context, op string, d time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("op", op))
	m.persistDuration.Record(ctx, d.Seconds(), attrs)
	if err != nil {
		m.persistFailures.Add(ctx, 1, attrs)
	}
}

// RecordCacheLookup counts an insights cache hit or miss.
func (m *Instruments) RecordCacheLookup(ctx context.Context, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// NewPrometheusProvider builds an SDK MeterProvider whose readings are
// exposed in Prometheus text format by the returned handler. The registry is
// private so tests can build several providers without collisions.
func NewPrometheusProvider() (*sdkmetric.MeterProvider, http.Handler, error) {
	reg := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, nil, fmt.Errorf("metrics.NewPrometheusProvider: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	return mp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}
