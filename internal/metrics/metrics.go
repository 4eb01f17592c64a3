// Package metrics provides Prometheus metrics for the memoization cache.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"memocache/internal/memoize"
)

// Metrics holds all Prometheus metrics for one cache.
//
// It implements memoize.Observer, so a Metrics can be set directly as the
// Observer of a memoize.Config.
type Metrics struct {
	Lookups         prometheus.Counter
	Hits            prometheus.Counter
	Misses          prometheus.Counter
	ComputeFailures prometheus.Counter
}

var _ memoize.Observer = (*Metrics)(nil)

// New creates a Metrics instance with the given namespace, registered with
// reg. Pass prometheus.DefaultRegisterer to use the default registry.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Lookups: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Total number of cache lookups",
		}),
		Hits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hits_total",
			Help:      "Total number of lookups served from the store",
		}),
		Misses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "misses_total",
			Help:      "Total number of lookups that invoked the value function",
		}),
		ComputeFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compute_failures_total",
			Help:      "Total number of value computations that returned an error",
		}),
	}
}

// OnHit implements memoize.Observer.
func (m *Metrics) OnHit() {
	m.Lookups.Inc()
	m.Hits.Inc()
}

// OnMiss implements memoize.Observer.
func (m *Metrics) OnMiss() {
	m.Lookups.Inc()
	m.Misses.Inc()
}

// OnComputeError implements memoize.Observer.
func (m *Metrics) OnComputeError(string, error) {
	m.ComputeFailures.Inc()
}
