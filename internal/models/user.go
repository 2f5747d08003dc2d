package models

import (
	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleAffiliate = "affiliate"
	RoleAdmin     = "admin"
)

type User struct {
	gorm.Model
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"` // Unique index on Email
	Phone        string `gorm:"uniqueIndex;not null"` // Unique index on Phone
	Password     string `gorm:"not null" json:"-"`
	PlayerID     string `gorm:"uniqueIndex;not null"`
	Role         string `gorm:"default:'user'"` // user | affiliate | admin
	Status       string `gorm:"default:'active'"`
	ReferralCode string `gorm:"uniqueIndex"`
	ReferredBy   *uint
	TokenVersion int `gorm:"default:1"`

	// Balance fields. All mutations go through the transaction service
	// inside a database transaction; balances never go below zero.
	Balance                   float64 `gorm:"default:0"`
	CommissionBalance         float64 `gorm:"default:0"`
	DepositCommission         float64 `gorm:"default:0"` // rate, percent
	DepositCommissionBalance  float64 `gorm:"default:0"`
	ReferCommission           float64 `gorm:"default:0"`
	ReferCommissionBalance    float64 `gorm:"default:0"`
	GameLossCommission        float64 `gorm:"default:0"`
	GameLossCommissionBalance float64 `gorm:"default:0"`
}

// BalanceSnapshot is the balance view returned to clients after a
// transaction-completing event.
type BalanceSnapshot struct {
	Balance                   float64 `json:"balance"`
	CommissionBalance         float64 `json:"commissionBalance"`
	DepositCommissionBalance  float64 `json:"depositCommissionBalance"`
	ReferCommissionBalance    float64 `json:"referCommissionBalance"`
	GameLossCommissionBalance float64 `json:"gameLossCommissionBalance"`
}

func (u *User) Snapshot() BalanceSnapshot {
	return BalanceSnapshot{
		Balance:                   u.Balance,
		CommissionBalance:         u.CommissionBalance,
		DepositCommissionBalance:  u.DepositCommissionBalance,
		ReferCommissionBalance:    u.ReferCommissionBalance,
		GameLossCommissionBalance: u.GameLossCommissionBalance,
	}
}
