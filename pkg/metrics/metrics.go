// Package metrics provides Prometheus counters for conversion activity.
// Counters are registered once at package load through promauto and are
// safe for concurrent use.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CellsConverted counts cells processed per conversion kind and outcome.
	// Outcome is "ok" or "null".
	CellsConverted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slurmframe_cells_converted_total",
		Help: "Total cells processed by conversion kind and outcome",
	}, []string{"kind", "outcome"})

	// NAViolations counts null output cells whose input was not a
	// recognized missing-value marker.
	NAViolations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slurmframe_na_violations_total",
		Help: "Total unexpected-NA cells detected by the NA validator",
	}, []string{"policy"})

	// RowsCleaned counts rows fully assembled into typed output.
	RowsCleaned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slurmframe_rows_cleaned_total",
		Help: "Total input rows converted to typed records",
	})
)

// RecordCells is a convenience wrapper used by the coercers to record one
// batch worth of outcomes.
func RecordCells(kind string, ok, null int) {
	if ok > 0 {
		CellsConverted.WithLabelValues(kind, "ok").Add(float64(ok))
	}
	if null > 0 {
		CellsConverted.WithLabelValues(kind, "null").Add(float64(null))
	}
}
