package handlers

import (
	"errors"

	"tkbet/internal/models"
	"tkbet/internal/repositories"
	"tkbet/internal/services/transaction"
	"tkbet/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	txnService transaction.Service
}

func NewTransactionHandler(txnService transaction.Service) *TransactionHandler {
	return &TransactionHandler{
		txnService: txnService,
	}
}

// CreateDeposit accepts the storefront deposit submission. The transaction
// opens pending; nothing is credited until an admin or the auto-payment
// verifier completes it.
func (h *TransactionHandler) CreateDeposit(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var body struct {
		PaymentMethodID uint                 `json:"paymentMethodId"`
		Channel         string               `json:"channel"`
		Amount          float64              `json:"amount"`
		PromotionID     *uint                `json:"promotionId"`
		UserInputs      []models.InputValue  `json:"userInputs"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	txn, err := h.txnService.CreateDeposit(c.Context(), transaction.CreateDepositInput{
		UserID:          claims.UserID,
		PaymentMethodID: body.PaymentMethodID,
		Channel:         body.Channel,
		Amount:          body.Amount,
		PromotionID:     body.PromotionID,
		Inputs:          body.UserInputs,
		IdempotencyKey:  c.Get("Idempotency-Key"),
	})
	if err != nil {
		return h.creationError(c, err)
	}

	return utils.Created(c, txn)
}

// CreateWithdrawal accepts the storefront withdrawal request and debits the
// balance immediately.
func (h *TransactionHandler) CreateWithdrawal(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var body struct {
		PaymentMethodID uint                `json:"paymentMethodId"`
		Channel         string              `json:"channel"`
		Amount          float64             `json:"amount"`
		UserInputs      []models.InputValue `json:"userInputs"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	txn, err := h.txnService.CreateWithdrawal(c.Context(), transaction.CreateWithdrawalInput{
		UserID:          claims.UserID,
		PaymentMethodID: body.PaymentMethodID,
		Channel:         body.Channel,
		Amount:          body.Amount,
		Inputs:          body.UserInputs,
		IdempotencyKey:  c.Get("Idempotency-Key"),
	})
	if err != nil {
		return h.creationError(c, err)
	}

	return utils.Created(c, txn)
}

// MyTransactions lists the caller's transaction history.
func (h *TransactionHandler) MyTransactions(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	p := utils.ParsePagination(c)

	txns, err := h.txnService.ListByUser(claims.UserID, p.Limit, p.Offset)
	if err != nil {
		return utils.InternalError(c, "Failed to list transactions")
	}

	return utils.Success(c, txns)
}

// AdminList lists transactions with optional type/status/user filters.
func (h *TransactionHandler) AdminList(c *fiber.Ctx) error {
	p := utils.ParsePagination(c)

	txns, total, err := h.txnService.List(repositories.TransactionFilter{
		Type:   c.Query("type"),
		Status: c.Query("status"),
		UserID: uint(c.QueryInt("userId")),
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		return utils.InternalError(c, "Failed to list transactions")
	}

	return utils.Success(c, fiber.Map{
		"transactions": txns,
		"total":        total,
		"page":         p.Page,
		"limit":        p.Limit,
	})
}

// AdminApprove completes a pending transaction.
func (h *TransactionHandler) AdminApprove(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var body struct {
		Note string `json:"note"`
	}
	c.BodyParser(&body) // note is optional

	txn, err := h.txnService.Complete(id, body.Note)
	if err != nil {
		return h.transitionError(c, err)
	}
	return utils.Success(c, txn)
}

// AdminReject rejects a pending transaction, refunding withdrawals.
func (h *TransactionHandler) AdminReject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var body struct {
		Note string `json:"note"`
	}
	c.BodyParser(&body)

	txn, err := h.txnService.Reject(id, body.Note)
	if err != nil {
		return h.transitionError(c, err)
	}
	return utils.Success(c, txn)
}

func (h *TransactionHandler) creationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, transaction.ErrInsufficientBalance):
		return utils.BadRequest(c, "Insufficient balance")
	case errors.Is(err, transaction.ErrMethodUnavailable),
		errors.Is(err, transaction.ErrUnknownChannel),
		errors.Is(err, transaction.ErrPromotionNotActive),
		errors.Is(err, repositories.ErrPaymentMethodNotFound):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, transaction.ErrDuplicateRequest):
		return utils.Fail(c, fiber.StatusConflict, "Duplicate request")
	default:
		return localizedBadRequest(c, err)
	}
}

func (h *TransactionHandler) transitionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repositories.ErrTransactionNotFound):
		return utils.NotFound(c, "Transaction not found")
	case errors.Is(err, transaction.ErrInvalidTransition):
		return utils.Fail(c, fiber.StatusConflict, err.Error())
	default:
		return utils.InternalError(c, "Failed to update transaction")
	}
}
