// Package autopay automates verification of user-submitted payment
// references against the provider confirmation feed.
package autopay

import (
	"errors"
	"time"

	"tkbet/internal/models"
	"tkbet/internal/repositories"
)

// ClaimTTL is how long a claim stays eligible for matching before the
// verifier expires it.
const ClaimTTL = 2 * time.Minute

var (
	ErrClaimExists        = errors.New("auto-payment already requested")
	ErrTransactionNotOpen = errors.New("transaction is not pending")
	ErrAmountMismatch     = errors.New("amount does not match transaction")
	ErrMissingTrxID       = errors.New("transaction carries no payment reference")
	ErrNotDeposit         = errors.New("auto-payment only applies to deposits")
)

// Status is the poll response for one claim.
type Status struct {
	Status      string              `json:"status"`
	Transaction *models.Transaction `json:"transaction"`
}

type Service interface {
	// RegisterClaim opens an auto-payment claim for a pending deposit.
	RegisterClaim(transactionID uint, trxID string, amount float64) (*models.AutoPaymentClaim, error)
	// CheckStatus reports the claim state the storefront polls for.
	CheckStatus(transactionID uint) (*Status, error)
}

type service struct {
	claimRepo repositories.AutoPaymentRepository
	txnRepo   repositories.TransactionRepository
	now       func() time.Time
}

func NewService(claimRepo repositories.AutoPaymentRepository, txnRepo repositories.TransactionRepository) Service {
	return &service{
		claimRepo: claimRepo,
		txnRepo:   txnRepo,
		now:       time.Now,
	}
}

func (s *service) RegisterClaim(transactionID uint, trxID string, amount float64) (*models.AutoPaymentClaim, error) {
	txn, err := s.txnRepo.GetByID(transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Type != models.TransactionTypeDeposit {
		return nil, ErrNotDeposit
	}
	if txn.Terminal() {
		return nil, ErrTransactionNotOpen
	}
	if amount != 0 && amount != txn.Amount {
		return nil, ErrAmountMismatch
	}

	if trxID == "" {
		trxID = txn.TrxID
	}
	if trxID == "" {
		return nil, ErrMissingTrxID
	}

	claim := &models.AutoPaymentClaim{
		TransactionID: transactionID,
		TrxID:         trxID,
		Amount:        txn.Amount,
		Status:        models.ClaimStatusPending,
		ExpiresAt:     s.now().Add(ClaimTTL),
	}
	if err := s.claimRepo.Create(claim); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrClaimExists
		}
		return nil, err
	}
	return claim, nil
}

func (s *service) CheckStatus(transactionID uint) (*Status, error) {
	claim, err := s.claimRepo.GetByTransactionID(transactionID)
	if err != nil {
		return nil, err
	}
	txn, err := s.txnRepo.GetByID(transactionID)
	if err != nil {
		return nil, err
	}
	// The storefront poller stops only on "completed", so once a matched
	// claim's credit has landed the poll reports the transaction state.
	status := claim.Status
	if claim.Status == models.ClaimStatusMatched && txn.Status == models.TransactionStatusCompleted {
		status = models.TransactionStatusCompleted
	}
	return &Status{
		Status:      status,
		Transaction: txn,
	}, nil
}
