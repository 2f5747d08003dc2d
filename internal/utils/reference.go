package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateTransactionReference builds a human-readable transaction reference.
// Format: TKB-<unix seconds, last 6 digits><3 random digits><type digit>.
// The type digit disambiguates deposits (1) from withdrawals (2) at a glance.
func GenerateTransactionReference(txType string) string {
	typeDigit := 1
	if txType == "withdrawal" {
		typeDigit = 2
	}
	ts := time.Now().Unix() % 1000000
	return fmt.Sprintf("TKB-%06d%03d%d", ts, rand.Intn(1000), typeDigit)
}

// GeneratePlayerID returns a short uppercase player identifier shown to the
// user and used as the launch username at the game provider.
func GeneratePlayerID() string {
	id := strings.ToUpper(uuid.New().String())
	return "P" + strings.ReplaceAll(id, "-", "")[:9]
}

// GenerateReferralCode returns a short shareable referral code.
func GenerateReferralCode() string {
	id := strings.ToUpper(uuid.New().String())
	return strings.ReplaceAll(id, "-", "")[:8]
}
