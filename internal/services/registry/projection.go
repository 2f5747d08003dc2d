package registry

import (
	"fmt"

	"tkbet/internal/models"
)

// DefaultAmounts backs the quick-pick buttons when a method configures none.
var DefaultAmounts = []float64{100, 200, 500, 1000, 3000, 5000, 10000, 15000, 20000, 25000}

// Tab is the storefront deposit page view of one payment method. One tab per
// method, promotions pre-joined so the client renders without extra requests.
type Tab struct {
	MethodID          uint                        `json:"methodId"`
	Name              string                      `json:"name"`
	Image             string                      `json:"image"`
	ButtonColor       string                      `json:"buttonColor"`
	Gateways          []string                    `json:"gateways"`
	Amounts           []float64                   `json:"amounts"`
	MinAmount         float64                     `json:"minAmount"`
	MaxAmount         float64                     `json:"maxAmount"`
	AgentWalletNumber string                      `json:"agentWalletNumber,omitempty"`
	Instruction       string                      `json:"instruction,omitempty"`
	UserInputs        []models.UserInputDescriptor `json:"userInputs"`
	Promotions        []TabPromotion              `json:"promotions"`
}

// TabPromotion is a promotion bonus flattened onto the tab it applies to.
type TabPromotion struct {
	PromotionID uint    `json:"promotionId"`
	Title       string  `json:"title"`
	Gateway     string  `json:"gateway,omitempty"`
	BonusType   string  `json:"bonusType"`
	Bonus       float64 `json:"bonus"`
	MinAmount   float64 `json:"minAmount"`
	Condition   string  `json:"condition"`
}

// BuildTabs joins active deposit methods with the promotions that apply to
// them, localized for the requested language.
func BuildTabs(methods []models.PaymentMethod, promos []models.Promotion, lang string) []Tab {
	tabs := make([]Tab, 0, len(methods))
	for _, m := range methods {
		amounts := []float64(m.Amounts)
		if len(amounts) == 0 {
			amounts = DefaultAmounts
		}

		tab := Tab{
			MethodID:          m.ID,
			Name:              localized(lang, m.MethodName, m.MethodNameBD),
			Image:             m.MethodImage,
			ButtonColor:       m.ButtonColor,
			Gateways:          m.Gateways,
			Amounts:           amounts,
			MinAmount:         m.MinAmount,
			MaxAmount:         m.MaxAmount,
			AgentWalletNumber: m.AgentWalletNumber,
			Instruction:       localized(lang, m.Instruction, m.InstructionBD),
			UserInputs:        m.UserInputs,
			Promotions:        []TabPromotion{},
		}

		for _, p := range promos {
			if !p.AppliesTo(m.ID) {
				continue
			}
			for _, b := range p.Bonuses {
				if b.PaymentMethodID != 0 && b.PaymentMethodID != m.ID {
					continue
				}
				tab.Promotions = append(tab.Promotions, TabPromotion{
					PromotionID: p.ID,
					Title:       localized(lang, p.Title, p.TitleBD),
					Gateway:     b.Gateway,
					BonusType:   b.BonusType,
					Bonus:       b.Bonus,
					MinAmount:   b.MinAmount,
					Condition:   bonusCondition(b),
				})
			}
		}

		tabs = append(tabs, tab)
	}
	return tabs
}

// bonusCondition renders the eligibility line shown under a promotion,
// e.g. "≥৳500".
func bonusCondition(b models.PromotionBonus) string {
	if b.MinAmount <= 0 {
		return ""
	}
	return fmt.Sprintf("≥৳%v", b.MinAmount)
}

func localized(lang, en, bd string) string {
	if lang == "en" || bd == "" {
		return en
	}
	return bd
}
