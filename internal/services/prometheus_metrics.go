package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	transactionsProcessed     *prometheus.CounterVec
	reconciliationDuration    prometheus.Histogram
	authenticationEventsTotal *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		transactionsProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_processed_total",
				Help: "Total number of transaction writes by operation and outcome",
			},
			[]string{"operation", "status"},
		),
		reconciliationDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "reconciliation_duration_milliseconds",
				Help:    "Duration of a transaction write including its balance and budget reconciliation",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		authenticationEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	operation := tags["operation"]

	switch name {
	case "transaction.processed.success":
		m.transactionsProcessed.WithLabelValues(operation, "success").Inc()
	case "transaction.processed.failed":
		m.transactionsProcessed.WithLabelValues(operation, "failed").Inc()
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "transaction.processing":
		m.reconciliationDuration.Observe(float64(duration.Milliseconds()))
	}
}
