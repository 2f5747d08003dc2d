package handlers

import (
	"tkbet/internal/services/card"
	"tkbet/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CardHandler struct {
	cardService *card.Service
}

func NewCardHandler(cardService *card.Service) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

// Tokenize exchanges card details for a payment token on the card deposit
// channel. The token is what the client submits with the transaction.
func (h *CardHandler) Tokenize(c *fiber.Ctx) error {
	if _, err := extractUserClaims(c); err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input card.CardInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	tokenized, err := h.cardService.Tokenize(input)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	return utils.Success(c, tokenized)
}
