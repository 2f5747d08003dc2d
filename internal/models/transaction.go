package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Transaction types
const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
)

// Transaction statuses. Transitions are monotonic: only a pending
// transaction may change state, and completion is idempotent.
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusRejected  = "rejected"
	TransactionStatusExpired   = "expired"
)

// InputValue is the submitted value for one of the method's user input
// descriptors, snapshotted onto the transaction at creation time.
type InputValue struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Label   string `json:"label"`
	LabelBD string `json:"labelBD"`
	Type    string `json:"type"`
}

// InputValueList stores submitted inputs as jsonb.
type InputValueList []InputValue

func (l InputValueList) Value() (driver.Value, error) { return json.Marshal(l) }
func (l *InputValueList) Scan(value interface{}) error { return scanJSON(value, l) }

// Transaction is one deposit or withdrawal attempt.
type Transaction struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	Reference       string `gorm:"uniqueIndex;not null" json:"reference"`
	Type            string `gorm:"not null;index" json:"type"`
	UserID          uint   `gorm:"not null;index" json:"userId"`
	PaymentMethodID uint   `gorm:"not null" json:"paymentMethodId"`
	Channel         string `gorm:"not null" json:"channel"`
	Amount          float64 `gorm:"not null" json:"amount"`
	PromotionID     *uint   `json:"promotionId,omitempty"`
	UserInputs      InputValueList `gorm:"type:jsonb" json:"userInputs"`
	TrxID           string         `gorm:"index" json:"trxId,omitempty"`
	Status          string         `gorm:"not null;default:'pending';index" json:"status"`
	Note            string         `json:"note,omitempty"`
	IdempotencyKey  *string        `gorm:"uniqueIndex" json:"-"`
	Metadata        JSON           `gorm:"type:jsonb" json:"metadata,omitempty"`
	CompletedAt     *time.Time     `json:"completedAt,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// Terminal reports whether the transaction can no longer change state.
func (t *Transaction) Terminal() bool {
	return t.Status != TransactionStatusPending
}

// TransactionStats is the aggregate view behind the dashboard counters.
type TransactionStats struct {
	Total       int64   `json:"total"`
	TotalAmount float64 `json:"totalAmount"`
	Today       int64   `json:"today"`
	TodayAmount float64 `json:"todayAmount"`
	Pending     int64   `json:"pending"`
}
