package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeTestToken(t *testing.T) {
	svc := NewService()

	got, err := svc.Tokenize(CardInput{
		CardNumber:  "tok_visa",
		ExpiryMonth: "12",
		ExpiryYear:  "2030",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok_visa", got.Token)
	assert.Equal(t, "Visa", got.CardType)
	assert.Equal(t, "12/2030", got.Expiry)
}

func TestTokenizeRejectsInvalidCardNumber(t *testing.T) {
	svc := NewService()

	_, err := svc.Tokenize(CardInput{
		CardNumber:  "1234567890123456",
		ExpiryMonth: "12",
		ExpiryYear:  "2030",
	})
	assert.Error(t, err)
}

func TestLuhnCheck(t *testing.T) {
	assert.True(t, isValidCardNumber("4242424242424242"))
	assert.True(t, isValidCardNumber("5555555555554444"))
	assert.False(t, isValidCardNumber("4242424242424241"))
	assert.False(t, isValidCardNumber(""))
	assert.False(t, isValidCardNumber("4242-4242"))
}

func TestExpiryCheck(t *testing.T) {
	assert.True(t, isValidExpiry("12", "2099"))
	assert.False(t, isValidExpiry("12", "2020"))
	assert.False(t, isValidExpiry("13", "2099"))
	assert.False(t, isValidExpiry("ab", "2099"))
}
