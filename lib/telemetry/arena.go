package telemetry

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/coachpo/arena/arena"
)

// ObserveArena registers observable instruments that report arena health.
// Gauges emit idle value and live lease counts; counters emit cumulative
// created, reused, and discarded totals.
func ObserveArena(name string, stats func() arena.Stats) {
	if stats == nil {
		return
	}
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		normalized = "default"
	}
	attrs := []attribute.KeyValue{attribute.String("arena", normalized)}

	meter := otel.Meter("arena")
	if _, err := meter.Int64ObservableGauge("arena_values_idle",
		metric.WithDescription("Values stored and ready for reuse"),
		metric.WithUnit("{value}"),
		metric.WithInt64Callback(func(_ context.Context, observer metric.Int64Observer) error {
			observer.Observe(stats().Idle, metric.WithAttributes(attrs...))
			return nil
		}),
	); err != nil {
		return
	}
	if _, err := meter.Int64ObservableGauge("arena_leases_live",
		metric.WithDescription("Leases currently held by callers"),
		metric.WithUnit("{lease}"),
		metric.WithInt64Callback(func(_ context.Context, observer metric.Int64Observer) error {
			observer.Observe(stats().Live, metric.WithAttributes(attrs...))
			return nil
		}),
	); err != nil {
		return
	}
	if _, err := meter.Int64ObservableCounter("arena_values_created_total",
		metric.WithDescription("Values initialized because nothing was reusable"),
		metric.WithUnit("{value}"),
		metric.WithInt64Callback(func(_ context.Context, observer metric.Int64Observer) error {
			observer.Observe(stats().Created, metric.WithAttributes(attrs...))
			return nil
		}),
	); err != nil {
		return
	}
	if _, err := meter.Int64ObservableCounter("arena_values_reused_total",
		metric.WithDescription("Acquisitions satisfied from stored values"),
		metric.WithUnit("{value}"),
		metric.WithInt64Callback(func(_ context.Context, observer metric.Int64Observer) error {
			observer.Observe(stats().Reused, metric.WithAttributes(attrs...))
			return nil
		}),
	); err != nil {
		return
	}
	if _, err := meter.Int64ObservableCounter("arena_values_discarded_total",
		metric.WithDescription("Released values rejected by the sanitize rule or truncated"),
		metric.WithUnit("{value}"),
		metric.WithInt64Callback(func(_ context.Context, observer metric.Int64Observer) error {
			observer.Observe(stats().Discarded, metric.WithAttributes(attrs...))
			return nil
		}),
	); err != nil {
		return
	}
}
