package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	conversionsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conversion_worker_processed_total",
		Help: "Conversions processed to a terminal outcome, labeled by outcome",
	}, []string{"outcome"})

	conversionRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conversion_worker_retries_total",
		Help: "Conversions requeued after a retryable generation failure",
	})

	settlementConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conversion_worker_settlement_conflicts_total",
		Help: "Settlements refused because a conflicting outcome was already recorded",
	})

	generationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "conversion_worker_generation_duration_seconds",
		Help:    "Latency distribution of generation calls",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})
)
