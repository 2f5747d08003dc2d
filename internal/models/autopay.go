package models

import "time"

// Auto-payment claim statuses
const (
	ClaimStatusPending = "pending"
	ClaimStatusMatched = "matched"
	ClaimStatusExpired = "expired"
)

// AutoPaymentClaim registers a user-submitted transaction reference for
// automated verification against the provider confirmation feed. A claim
// that is not matched before ExpiresAt is expired exactly once by the
// verifier; the associated transaction stays reviewable by an admin.
type AutoPaymentClaim struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	TransactionID uint    `gorm:"uniqueIndex;not null" json:"transactionId"`
	TrxID         string  `gorm:"not null;index" json:"trxId"`
	Amount        float64 `gorm:"not null" json:"amount"`
	Status        string  `gorm:"not null;default:'pending';index" json:"status"`
	ExpiresAt     time.Time `gorm:"not null" json:"expiresAt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Expired reports whether the claim deadline has passed.
func (c *AutoPaymentClaim) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
