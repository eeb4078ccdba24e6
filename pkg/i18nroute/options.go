package i18nroute

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Option configures an Expander.
type Option func(*Expander)

// WithSorter sets the sorter applied to the flat list of localized routes.
// Without a sorter routes keep expansion order.
func WithSorter(s Sorter) Option {
	return func(e *Expander) {
		e.sorter = s
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Expander) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records expansion metrics.
func WithMetrics(m *Metrics) Option {
	return func(e *Expander) {
		e.metrics = m
	}
}

// WithTracer sets the tracer used by ExpandContext.
// Default: the global OpenTelemetry tracer provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Expander) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}
