package registry

import (
	"testing"

	"tkbet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeMethod(id uint) models.PaymentMethod {
	m := models.PaymentMethod{
		MethodName:   "bKash Personal",
		MethodNameBD: "বিকাশ পার্সোনাল",
		Kind:         models.MethodKindDeposit,
		Gateways:     models.StringSlice{"bKash"},
		MinAmount:    100,
		MaxAmount:    25000,
		UserInputs: models.UserInputList{
			{Name: "trxId", Label: "Transaction ID", Type: "text", IsRequired: true},
		},
		Status: "active",
	}
	m.ID = id
	return m
}

func TestBuildTabsDefaultAmounts(t *testing.T) {
	tabs := BuildTabs([]models.PaymentMethod{makeMethod(1)}, nil, "en")
	require.Len(t, tabs, 1)
	assert.Equal(t, DefaultAmounts, tabs[0].Amounts)
}

func TestBuildTabsKeepsConfiguredAmounts(t *testing.T) {
	m := makeMethod(1)
	m.Amounts = models.Float64Slice{500, 1000}
	tabs := BuildTabs([]models.PaymentMethod{m}, nil, "en")
	require.Len(t, tabs, 1)
	assert.Equal(t, []float64{500, 1000}, tabs[0].Amounts)
}

func TestBuildTabsLocalization(t *testing.T) {
	m := makeMethod(1)

	en := BuildTabs([]models.PaymentMethod{m}, nil, "en")
	bn := BuildTabs([]models.PaymentMethod{m}, nil, "bn")

	assert.Equal(t, "bKash Personal", en[0].Name)
	assert.Equal(t, "বিকাশ পার্সোনাল", bn[0].Name)
}

func TestBuildTabsJoinsPromotions(t *testing.T) {
	m1 := makeMethod(1)
	m2 := makeMethod(2)

	promo := models.Promotion{
		Title:          "First Deposit Bonus",
		TitleBD:        "প্রথম ডিপোজিট বোনাস",
		PaymentMethods: models.UintSlice{1},
		Bonuses: models.BonusList{
			{PaymentMethodID: 1, Gateway: "bKash", BonusType: models.BonusTypePercentage, Bonus: 10, MinAmount: 500},
		},
		Status: "active",
	}
	promo.ID = 7

	tabs := BuildTabs([]models.PaymentMethod{m1, m2}, []models.Promotion{promo}, "en")
	require.Len(t, tabs, 2)

	require.Len(t, tabs[0].Promotions, 1)
	got := tabs[0].Promotions[0]
	assert.Equal(t, uint(7), got.PromotionID)
	assert.Equal(t, "First Deposit Bonus", got.Title)
	assert.Equal(t, "≥৳500", got.Condition)

	// Promotion is scoped to method 1 only.
	assert.Empty(t, tabs[1].Promotions)
}

func TestBuildTabsNoConditionWithoutMinimum(t *testing.T) {
	m := makeMethod(1)
	promo := models.Promotion{
		Title:          "Cashback",
		PaymentMethods: models.UintSlice{1},
		Bonuses: models.BonusList{
			{BonusType: models.BonusTypeFixed, Bonus: 50},
		},
	}
	promo.ID = 3

	tabs := BuildTabs([]models.PaymentMethod{m}, []models.Promotion{promo}, "en")
	require.Len(t, tabs[0].Promotions, 1)
	assert.Empty(t, tabs[0].Promotions[0].Condition)
}
