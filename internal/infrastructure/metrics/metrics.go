package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for TransactionsProcessed.
const (
	OutcomeAccepted = "accepted"
	OutcomeIgnored  = "ignored"
	OutcomeRejected = "rejected"
	OutcomeInvalid  = "invalid"
)

// Metrics holds all Prometheus metrics of a run.
type Metrics struct {
	registry *prometheus.Registry

	// Transaction metrics
	TransactionsProcessed *prometheus.CounterVec
	TransactionErrors     *prometheus.CounterVec
	TransactionAmount     prometheus.Histogram

	// Account metrics
	Accounts       prometheus.Gauge
	LockedAccounts prometheus.Gauge

	// Run metrics
	RecordsRead    prometheus.Counter
	RunDuration    prometheus.Gauge
	HistoryEntries prometheus.Gauge
}

// New creates all metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		TransactionsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txengine_transactions_processed_total",
				Help: "Total transactions processed by type and outcome",
			},
			[]string{"type", "outcome"},
		),
		TransactionErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txengine_transaction_errors_total",
				Help: "Total rejected or invalid transactions by error type",
			},
			[]string{"error_type"},
		),
		TransactionAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "txengine_transaction_amount",
			Help:    "Amounts of accepted transactions",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		Accounts: factory.NewGauge(prometheus.GaugeOpts{
			Name: "txengine_accounts",
			Help: "Number of client accounts at the end of the run",
		}),
		LockedAccounts: factory.NewGauge(prometheus.GaugeOpts{
			Name: "txengine_locked_accounts",
			Help: "Number of locked client accounts at the end of the run",
		}),

		RecordsRead: factory.NewCounter(prometheus.CounterOpts{
			Name: "txengine_records_read_total",
			Help: "Total input records read",
		}),
		RunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "txengine_run_duration_seconds",
			Help: "Wall clock duration of the ingestion run",
		}),
		HistoryEntries: factory.NewGauge(prometheus.GaugeOpts{
			Name: "txengine_history_entries",
			Help: "Number of accepted transactions recorded in history",
		}),
	}
}

// Gatherer exposes the registry holding the metrics.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes all metrics to path in the text exposition format
// read by the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
