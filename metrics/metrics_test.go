package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Killswit3h/my-calendar-sub002/metrics"
)

// counterValue gathers one counter's value, matching labels when given.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
	next:
		for _, m := range fam.GetMetric() {
			for _, label := range m.GetLabel() {
				if want, ok := labels[label.GetName()]; !ok || want != label.GetValue() {
					continue next
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestObserveRebuild_SuccessCountsRowsAndMissing(t *testing.T) {
	// GIVEN: A registered rebuild collector set
	// WHEN: Observing two successful runs
	// THEN: Row and missing-rate counters accumulate; outcome=ok counts runs

	reg := prometheus.NewRegistry()
	m := metrics.NewRebuilds(reg)

	m.ObserveRebuild(120*time.Millisecond, 42, 1, nil)
	m.ObserveRebuild(80*time.Millisecond, 8, 0, nil)

	assert.Equal(t, float64(50), counterValue(t, reg, "labor_rebuild_rows_inserted_total", nil))
	assert.Equal(t, float64(1), counterValue(t, reg, "labor_rebuild_missing_rates_total", nil))
	assert.Equal(t, float64(2), counterValue(t, reg, "labor_rebuild_runs_total", map[string]string{"outcome": "ok"}))
}

func TestObserveRebuild_ErrorOnlyCountsOutcome(t *testing.T) {
	// GIVEN: A registered rebuild collector set
	// WHEN: Observing a failed run
	// THEN: The error outcome is counted; no rows are attributed to it

	reg := prometheus.NewRegistry()
	m := metrics.NewRebuilds(reg)

	m.ObserveRebuild(time.Second, 0, 0, errors.New("boom"))

	assert.Equal(t, float64(1), counterValue(t, reg, "labor_rebuild_runs_total", map[string]string{"outcome": "error"}))
	assert.Equal(t, float64(0), counterValue(t, reg, "labor_rebuild_rows_inserted_total", nil))
}
