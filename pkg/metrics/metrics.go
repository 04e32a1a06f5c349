// Package metrics holds the Prometheus collectors shared across the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ImportRows counts processed statement rows by outcome:
	// inserted, skipped_duplicate or skipped_invalid.
	ImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finance_import_rows_total",
		Help: "Statement rows processed during imports, by outcome.",
	}, []string{"outcome"})

	// ImportRuns counts completed import runs by result (ok or error).
	ImportRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finance_import_runs_total",
		Help: "Completed statement import runs, by result.",
	}, []string{"result"})

	// ClassifierCalls counts remote classification requests by mode
	// (category or rich) and outcome (ok or error).
	ClassifierCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "finance_classifier_calls_total",
		Help: "Remote classifier requests, by mode and outcome.",
	}, []string{"mode", "outcome"})
)
