// Package metrics exposes Prometheus instrumentation for rebuild runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Rebuilds implements labor.RebuildObserver over Prometheus collectors.
type Rebuilds struct {
	duration prometheus.Histogram
	rows     prometheus.Counter
	missing  prometheus.Counter
	outcomes *prometheus.CounterVec
}

// NewRebuilds registers the rebuild collectors on reg.
func NewRebuilds(reg prometheus.Registerer) *Rebuilds {
	m := &Rebuilds{
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "labor",
			Subsystem: "rebuild",
			Name:      "duration_seconds",
			Help:      "Wall time of ledger window rebuilds.",
			Buckets:   prometheus.DefBuckets,
		}),
		rows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "labor",
			Subsystem: "rebuild",
			Name:      "rows_inserted_total",
			Help:      "Ledger rows written by completed rebuilds.",
		}),
		missing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "labor",
			Subsystem: "rebuild",
			Name:      "missing_rates_total",
			Help:      "Distinct (employee, day) pairings skipped for lack of a pay rate.",
		}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "labor",
			Subsystem: "rebuild",
			Name:      "runs_total",
			Help:      "Rebuild runs by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(m.duration, m.rows, m.missing, m.outcomes)
	return m
}

// ObserveRebuild records one rebuild outcome.
func (m *Rebuilds) ObserveRebuild(elapsed time.Duration, rowsInserted, missingRates int, err error) {
	if err != nil {
		m.outcomes.WithLabelValues("error").Inc()
		return
	}
	m.outcomes.WithLabelValues("ok").Inc()
	m.duration.Observe(elapsed.Seconds())
	m.rows.Add(float64(rowsInserted))
	m.missing.Add(float64(missingRates))
}
