package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	rerankRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rerankd",
			Name:      "rerank_requests_total",
			Help:      "Total number of rerank invocations by outcome",
		},
		[]string{"outcome"}, // ok, error
	)

	rerankCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rerankd",
			Name:      "rerank_candidates",
			Help:      "Candidate set size per rerank invocation",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		},
	)

	rerankDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rerankd",
			Name:      "rerank_duration_seconds",
			Help:      "End-to-end rerank pipeline duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	registered = false
)

// RegisterRerankMetrics registers the pipeline metrics exactly once
// (explicit registration, no init side effects for callers to reason about).
func RegisterRerankMetrics() {
	if registered {
		return
	}
	prometheus.MustRegister(rerankRequestsTotal, rerankCandidates, rerankDuration)
	registered = true
}

// ObserveRerank records one rerank invocation.
func ObserveRerank(candidates int, elapsed time.Duration, failed bool) {
	if !registered {
		return
	}
	outcome := "ok"
	if failed {
		outcome = "error"
	}
	rerankRequestsTotal.WithLabelValues(outcome).Inc()
	rerankCandidates.Observe(float64(candidates))
	rerankDuration.Observe(elapsed.Seconds())
}
