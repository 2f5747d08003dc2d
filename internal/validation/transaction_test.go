package validation

import (
	"testing"

	"tkbet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	t.Run("WithinLimits", func(t *testing.T) {
		assert.NoError(t, ValidateAmount(500, 100, 25000))
	})

	t.Run("AtBoundaries", func(t *testing.T) {
		assert.NoError(t, ValidateAmount(100, 100, 25000))
		assert.NoError(t, ValidateAmount(25000, 100, 25000))
	})

	t.Run("BelowMinimum", func(t *testing.T) {
		err := ValidateAmount(50, 100, 25000)
		require.Error(t, err)
		var vErr *Error
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "Amount must be between 100 and 25000", vErr.Localized("en"))
		assert.NotEmpty(t, vErr.Localized("bn"))
	})

	t.Run("AboveMaximum", func(t *testing.T) {
		assert.Error(t, ValidateAmount(30000, 100, 25000))
	})

	t.Run("ZeroAndNegative", func(t *testing.T) {
		assert.Error(t, ValidateAmount(0, 100, 25000))
		assert.Error(t, ValidateAmount(-500, 100, 25000))
	})
}

func TestValidateRequiredInputs(t *testing.T) {
	descriptors := []models.UserInputDescriptor{
		{Name: "walletNumber", Label: "Wallet Number", LabelBD: "ওয়ালেট নম্বর", Type: "tel", IsRequired: true},
		{Name: "trxId", Label: "Transaction ID", Type: "text", IsRequired: true},
		{Name: "note", Label: "Note", Type: "text", IsRequired: false},
	}

	t.Run("AllPresent", func(t *testing.T) {
		err := ValidateRequiredInputs(descriptors, []models.InputValue{
			{Name: "walletNumber", Value: "01712345678"},
			{Name: "trxId", Value: "TX9A1B2C3D"},
		})
		assert.NoError(t, err)
	})

	t.Run("MissingRequired", func(t *testing.T) {
		err := ValidateRequiredInputs(descriptors, []models.InputValue{
			{Name: "walletNumber", Value: "01712345678"},
		})
		require.Error(t, err)
		var vErr *Error
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "Transaction ID is required", vErr.Localized("en"))
	})

	t.Run("WhitespaceOnlyCountsAsMissing", func(t *testing.T) {
		err := ValidateRequiredInputs(descriptors, []models.InputValue{
			{Name: "walletNumber", Value: "   "},
			{Name: "trxId", Value: "TX9A1B2C3D"},
		})
		require.Error(t, err)
		var vErr *Error
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "ওয়ালেট নম্বর প্রয়োজন", vErr.Localized("bn"))
	})

	t.Run("OptionalMayBeAbsent", func(t *testing.T) {
		err := ValidateRequiredInputs(descriptors, []models.InputValue{
			{Name: "walletNumber", Value: "01712345678"},
			{Name: "trxId", Value: "TX9A1B2C3D"},
		})
		assert.NoError(t, err)
	})
}

func TestFindTrxID(t *testing.T) {
	tests := []struct {
		name   string
		inputs []models.InputValue
		want   string
	}{
		{
			name: "exact field name",
			inputs: []models.InputValue{
				{Name: "trxId", Value: "TX123"},
			},
			want: "TX123",
		},
		{
			name: "case insensitive",
			inputs: []models.InputValue{
				{Name: "TrxID", Value: "TX456"},
			},
			want: "TX456",
		},
		{
			name: "embedded in longer name",
			inputs: []models.InputValue{
				{Name: "bkashTrxIdNumber", Value: "TX789"},
			},
			want: "TX789",
		},
		{
			name: "absent",
			inputs: []models.InputValue{
				{Name: "walletNumber", Value: "01712345678"},
			},
			want: "",
		},
		{
			name: "trims whitespace",
			inputs: []models.InputValue{
				{Name: "trxid", Value: "  TXABC  "},
			},
			want: "TXABC",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindTrxID(tt.inputs))
		})
	}
}

func TestHasSpecialChar(t *testing.T) {
	assert.False(t, HasSpecialChar("01712345678"))
	assert.False(t, HasSpecialChar("+8801712345678"))
	assert.True(t, HasSpecialChar("0171234; DROP"))
	assert.True(t, HasSpecialChar("wallet@number"))
}
