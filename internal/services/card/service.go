// Package card tokenizes international deposit cards through Stripe. The
// token replaces the card number everywhere downstream; raw numbers are
// never stored.
package card

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/token"
)

// CardInput is the card detail submission for the card deposit channel.
type CardInput struct {
	CardNumber  string `json:"cardNumber"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	CVV         string `json:"cvv"`
}

// TokenizedCard is the safe representation kept after tokenization.
type TokenizedCard struct {
	Token    string `json:"token"`
	CardType string `json:"cardType"`
	LastFour string `json:"lastFour"`
	Expiry   string `json:"expiry"`
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Tokenize exchanges card details for a Stripe token. Test tokens
// (tok_ prefix) pass through unchanged so the storefront can exercise the
// card channel without a live Stripe account.
func (s *Service) Tokenize(input CardInput) (*TokenizedCard, error) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	if strings.HasPrefix(input.CardNumber, "tok_") {
		return &TokenizedCard{
			Token:    input.CardNumber,
			CardType: cardTypeFromToken(input.CardNumber),
			LastFour: "4242",
			Expiry:   fmt.Sprintf("%s/%s", input.ExpiryMonth, input.ExpiryYear),
		}, nil
	}

	if !isValidCardNumber(input.CardNumber) {
		return nil, errors.New("invalid card number: failed validation check")
	}
	if !isValidExpiry(input.ExpiryMonth, input.ExpiryYear) {
		return nil, errors.New("card is expired")
	}

	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:   &input.CardNumber,
			ExpMonth: &input.ExpiryMonth,
			ExpYear:  &input.ExpiryYear,
			CVC:      &input.CVV,
		},
	}

	stripeToken, err := token.New(params)
	if err != nil {
		log.Printf("Stripe tokenization error: %v", err)
		return nil, fmt.Errorf("stripe tokenization failed: %v", err)
	}

	return &TokenizedCard{
		Token:    stripeToken.ID,
		CardType: string(stripeToken.Card.Brand),
		LastFour: stripeToken.Card.Last4,
		Expiry:   fmt.Sprintf("%s/%s", input.ExpiryMonth, input.ExpiryYear),
	}, nil
}

func cardTypeFromToken(tok string) string {
	switch tok {
	case "tok_visa", "tok_visa_debit":
		return "Visa"
	case "tok_mastercard":
		return "Mastercard"
	case "tok_amex":
		return "American Express"
	case "tok_discover":
		return "Discover"
	default:
		return "Unknown"
	}
}

// Luhn Algorithm: Used to validate credit card numbers
func isValidCardNumber(cardNumber string) bool {
	if cardNumber == "" {
		return false
	}
	var sum int
	shouldDouble := false

	for i := len(cardNumber) - 1; i >= 0; i-- {
		if cardNumber[i] < '0' || cardNumber[i] > '9' {
			return false
		}
		digit := int(cardNumber[i] - '0')

		if shouldDouble {
			digit = digit * 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		shouldDouble = !shouldDouble
	}

	return sum%10 == 0
}

func isValidExpiry(month, year string) bool {
	var m, y int
	if _, err := fmt.Sscanf(month, "%d", &m); err != nil {
		return false
	}
	if _, err := fmt.Sscanf(year, "%d", &y); err != nil {
		return false
	}
	if m < 1 || m > 12 {
		return false
	}
	if y < 100 {
		y += 2000
	}

	currentYear, currentMonth, _ := time.Now().Date()
	if y < currentYear || (y == currentYear && m < int(currentMonth)) {
		return false
	}
	return true
}
