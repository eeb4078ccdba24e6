package i18nroute

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Kinds of produced routes, used as the "kind" metrics label.
const (
	kindLocalized   = "localized"
	kindDefault     = "default"
	kindRedirect    = "redirect"
	kindPassthrough = "passthrough"
)

// MetricsConfig configures the expansion metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vango_i18n").
	Namespace string

	// Subsystem is the metrics subsystem (default: "routes").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for expansion duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the expansion metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vango_i18n",
		Subsystem: "routes",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors of the expander.
type Metrics struct {
	expansions *prometheus.CounterVec
	produced   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	records    prometheus.Gauge
}

// NewMetrics creates and registers the expansion collectors.
// Registering twice on the same registry panics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		expansions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "expansions_total",
			Help:        "Total number of route tree expansions",
			ConstLabels: cfg.ConstLabels,
		}, []string{"strategy"}),

		produced: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "produced_total",
			Help:        "Total number of routes produced by expansion, by kind",
			ConstLabels: cfg.ConstLabels,
		}, []string{"strategy", "kind"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "expansion_duration_seconds",
			Help:        "Route tree expansion duration in seconds",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}, []string{"strategy"}),

		records: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "path_map_records",
			Help:        "Number of records in the last produced custom path map",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

func (m *Metrics) observe(strategy Strategy, produced map[string]int, records int, elapsed time.Duration) {
	if m == nil {
		return
	}
	s := strategy.String()
	m.expansions.WithLabelValues(s).Inc()
	for kind, n := range produced {
		m.produced.WithLabelValues(s, kind).Add(float64(n))
	}
	m.duration.WithLabelValues(s).Observe(elapsed.Seconds())
	m.records.Set(float64(records))
}
