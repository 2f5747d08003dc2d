package metrics

// TransactionCollector feeds transaction lifecycle events into Prometheus.
// It satisfies the collector interface the transaction service accepts.
type TransactionCollector struct{}

func (TransactionCollector) TransactionCreated(txType string) {
	TransactionsTotal.WithLabelValues(txType).Inc()
}

func (TransactionCollector) TransactionCompleted(txType string) {
	TransactionsCompleted.WithLabelValues(txType).Inc()
}

func (TransactionCollector) TransactionRejected(txType string) {
	TransactionsRejected.WithLabelValues(txType).Inc()
}

// AutoPaymentCollector feeds verifier outcomes into Prometheus.
type AutoPaymentCollector struct{}

func (AutoPaymentCollector) ClaimMatched() { AutoPaymentMatched.Inc() }
func (AutoPaymentCollector) ClaimExpired() { AutoPaymentExpired.Inc() }
