package handlers

import (
	"errors"

	"tkbet/internal/repositories"
	"tkbet/internal/services/autopay"
	"tkbet/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AutoPaymentHandler struct {
	autopayService autopay.Service
}

func NewAutoPaymentHandler(autopayService autopay.Service) *AutoPaymentHandler {
	return &AutoPaymentHandler{
		autopayService: autopayService,
	}
}

// Register opens an auto-payment claim for a pending deposit. The verifier
// picks it up on the next sweep.
func (h *AutoPaymentHandler) Register(c *fiber.Ctx) error {
	var body struct {
		TransactionID uint    `json:"transactionId"`
		TrxID         string  `json:"trxId"`
		Amount        float64 `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	claim, err := h.autopayService.RegisterClaim(body.TransactionID, body.TrxID, body.Amount)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTransactionNotFound):
			return utils.NotFound(c, "Transaction not found")
		case errors.Is(err, autopay.ErrClaimExists):
			return utils.Fail(c, fiber.StatusConflict, err.Error())
		default:
			return utils.BadRequest(c, err.Error())
		}
	}

	return utils.Created(c, claim)
}

// Check is the storefront poll endpoint. The response carries the claim
// status plus the transaction so the client can stop polling the moment the
// state is terminal.
func (h *AutoPaymentHandler) Check(c *fiber.Ctx) error {
	id, err := parseID(c, "transactionId")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	status, err := h.autopayService.CheckStatus(id)
	if err != nil {
		if errors.Is(err, repositories.ErrClaimNotFound) {
			return utils.NotFound(c, "No auto-payment for this transaction")
		}
		return utils.InternalError(c, "Failed to check auto-payment")
	}

	return utils.Success(c, status)
}
