package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// TransactionsTotal counts created transactions by type.
	TransactionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tkbet_transactions_total",
			Help: "Number of transactions created, by type.",
		},
		[]string{"type"},
	)

	// TransactionsCompleted counts completed transactions by type.
	TransactionsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tkbet_transactions_completed_total",
			Help: "Number of transactions completed, by type.",
		},
		[]string{"type"},
	)

	// TransactionsRejected counts rejected transactions by type.
	TransactionsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tkbet_transactions_rejected_total",
			Help: "Number of transactions rejected, by type.",
		},
		[]string{"type"},
	)

	// AutoPaymentMatched counts auto-payment claims matched by the verifier.
	AutoPaymentMatched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tkbet_autopayment_matched_total",
			Help: "Number of auto-payment claims matched to provider confirmations.",
		},
	)

	// AutoPaymentExpired counts auto-payment claims that timed out.
	AutoPaymentExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tkbet_autopayment_expired_total",
			Help: "Number of auto-payment claims that expired unmatched.",
		},
	)

	// WorkerQueueDepth tracks jobs waiting in the background worker pool.
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tkbet_worker_queue_depth",
			Help: "Jobs queued or running in the background worker pool.",
		},
	)
)

// Init registers all collectors with the default registry.
func Init() {
	prometheus.MustRegister(
		TransactionsTotal,
		TransactionsCompleted,
		TransactionsRejected,
		AutoPaymentMatched,
		AutoPaymentExpired,
		WorkerQueueDepth,
	)
}

// Serve exposes /metrics on its own listener so the scrape endpoint stays
// off the public API port.
func Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("metrics listener stopped: %v", err)
		}
	}()
}
