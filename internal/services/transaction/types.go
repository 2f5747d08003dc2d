package transaction

import "tkbet/internal/models"

// CreateDepositInput is the storefront deposit submission.
type CreateDepositInput struct {
	UserID          uint
	PaymentMethodID uint
	Channel         string
	Amount          float64
	PromotionID     *uint
	Inputs          []models.InputValue
	IdempotencyKey  string
}

// CreateWithdrawalInput is the storefront withdrawal request.
type CreateWithdrawalInput struct {
	UserID          uint
	PaymentMethodID uint
	Channel         string
	Amount          float64
	Inputs          []models.InputValue
	IdempotencyKey  string
}

// MetricsCollector receives transaction lifecycle events. The Prometheus
// implementation lives in internal/metrics; tests use the noop.
type MetricsCollector interface {
	TransactionCreated(txType string)
	TransactionCompleted(txType string)
	TransactionRejected(txType string)
}

// NoopMetricsCollector discards all events.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) TransactionCreated(string)   {}
func (NoopMetricsCollector) TransactionCompleted(string) {}
func (NoopMetricsCollector) TransactionRejected(string)  {}
