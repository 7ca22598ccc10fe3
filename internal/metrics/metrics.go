package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation results used as the "result" label.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

// CatalogMetrics holds the Prometheus collectors for catalogue activity.
type CatalogMetrics struct {
	OperationsTotal   *prometheus.CounterVec
	Flowers           prometheus.Gauge
	BloomingFlowers   prometheus.Gauge
	AvailableVariants prometheus.Gauge
}

// NewCatalogMetrics creates the collectors and registers them with reg.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	factory := promauto.With(reg)
	return &CatalogMetrics{
		OperationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "florist",
			Subsystem: "catalog",
			Name:      "operations_total",
			Help:      "Total number of catalogue operations by operation and result.",
		}, []string{"operation", "result"}),
		Flowers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "florist",
			Subsystem: "catalog",
			Name:      "flowers",
			Help:      "Number of flowers currently stored.",
		}),
		BloomingFlowers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "florist",
			Subsystem: "catalog",
			Name:      "blooming_flowers",
			Help:      "Number of stored flowers that are in season.",
		}),
		AvailableVariants: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "florist",
			Subsystem: "catalog",
			Name:      "available_variants",
			Help:      "Number of available variants across all flowers.",
		}),
	}
}

// Observe counts one operation. A nil receiver is a no-op so callers can run
// with metrics disabled.
func (m *CatalogMetrics) Observe(operation, result string) {
	if m == nil {
		return
	}
	m.OperationsTotal.WithLabelValues(operation, result).Inc()
}

// Counter is the subset of the catalogue that the gauges are derived from.
type Counter interface {
	Count() int
	CountBlooming() int
	CountAvailableVariants() int
}

// Refresh sets the gauges from the current catalogue state.
func (m *CatalogMetrics) Refresh(c Counter) {
	if m == nil {
		return
	}
	m.Flowers.Set(float64(c.Count()))
	m.BloomingFlowers.Set(float64(c.CountBlooming()))
	m.AvailableVariants.Set(float64(c.CountAvailableVariants()))
}
