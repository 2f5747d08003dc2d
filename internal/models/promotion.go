package models

import (
	"database/sql/driver"
	"encoding/json"

	"gorm.io/gorm"
)

// Bonus types
const (
	BonusTypePercentage = "Percentage"
	BonusTypeFixed      = "Fixed"
)

// PromotionBonus scopes one bonus to a payment method and gateway.
type PromotionBonus struct {
	PaymentMethodID uint    `json:"paymentMethodId"`
	Gateway         string  `json:"gateway"`
	BonusType       string  `json:"bonusType"` // Percentage | Fixed
	Bonus           float64 `json:"bonus"`
	MinAmount       float64 `json:"minAmount"`
	MaxAmount       float64 `json:"maxAmount"`
}

// BonusList stores promotion bonuses as jsonb.
type BonusList []PromotionBonus

func (l BonusList) Value() (driver.Value, error) { return json.Marshal(l) }
func (l *BonusList) Scan(value interface{}) error { return scanJSON(value, l) }

type Promotion struct {
	gorm.Model
	Title          string `gorm:"not null"`
	TitleBD        string
	PaymentMethods UintSlice `gorm:"type:jsonb"` // applicable method IDs
	Bonuses        BonusList `gorm:"type:jsonb"`
	Status         string    `gorm:"default:'active';index"`
}

// AppliesTo reports whether the promotion covers the given payment method.
func (p *Promotion) AppliesTo(methodID uint) bool {
	for _, id := range p.PaymentMethods {
		if id == methodID {
			return true
		}
	}
	return false
}
