// Package transaction owns the deposit and withdrawal lifecycle. All
// balance mutations happen here, inside database transactions, and status
// transitions are monotonic: only pending transactions change state.
package transaction

import (
	"context"
	"errors"
	"log"
	"time"

	"tkbet/internal/models"
	"tkbet/internal/repositories"
	"tkbet/internal/utils"
	"tkbet/internal/validation"
)

// IdempotencyGuard is the fast-path duplicate submit check. The database
// unique index on the idempotency key remains authoritative.
type IdempotencyGuard interface {
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)
}

// UserInvalidator drops cached user state after a balance mutation.
type UserInvalidator interface {
	InvalidateUser(ctx context.Context, userID uint) error
}

type Service interface {
	CreateDeposit(ctx context.Context, input CreateDepositInput) (*models.Transaction, error)
	CreateWithdrawal(ctx context.Context, input CreateWithdrawalInput) (*models.Transaction, error)
	Complete(id uint, note string) (*models.Transaction, error)
	Reject(id uint, note string) (*models.Transaction, error)
	Expire(id uint) (*models.Transaction, error)
	Get(id uint) (*models.Transaction, error)
	ListByUser(userID uint, limit, offset int) ([]models.Transaction, error)
	List(filter repositories.TransactionFilter) ([]models.Transaction, int64, error)
	Stats(txType string) (*models.TransactionStats, error)
}

type service struct {
	txnRepo    repositories.TransactionRepository
	methodRepo repositories.PaymentMethodRepository
	promoRepo  repositories.PromotionRepository
	guard      IdempotencyGuard
	cache      UserInvalidator
	metrics    MetricsCollector
}

// NewService creates the transaction service. guard and cache may be nil;
// metrics defaults to the noop collector when nil.
func NewService(
	txnRepo repositories.TransactionRepository,
	methodRepo repositories.PaymentMethodRepository,
	promoRepo repositories.PromotionRepository,
	guard IdempotencyGuard,
	cache UserInvalidator,
	metrics MetricsCollector,
) Service {
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}
	return &service{
		txnRepo:    txnRepo,
		methodRepo: methodRepo,
		promoRepo:  promoRepo,
		guard:      guard,
		cache:      cache,
		metrics:    metrics,
	}
}

func (s *service) CreateDeposit(ctx context.Context, input CreateDepositInput) (*models.Transaction, error) {
	method, err := s.resolveMethod(input.PaymentMethodID, models.MethodKindDeposit, input.Channel)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateAmount(input.Amount, method.MinAmount, method.MaxAmount); err != nil {
		return nil, err
	}
	if err := validation.ValidateRequiredInputs(method.UserInputs, input.Inputs); err != nil {
		return nil, err
	}

	if input.PromotionID != nil {
		promo, err := s.promoRepo.GetByID(*input.PromotionID)
		if err != nil || promo.Status != "active" || !promo.AppliesTo(method.ID) {
			return nil, ErrPromotionNotActive
		}
	}

	if existing, err := s.claimIdempotencyKey(ctx, input.IdempotencyKey); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	txn := &models.Transaction{
		Reference:       utils.GenerateTransactionReference(models.TransactionTypeDeposit),
		Type:            models.TransactionTypeDeposit,
		UserID:          input.UserID,
		PaymentMethodID: method.ID,
		Channel:         input.Channel,
		Amount:          input.Amount,
		PromotionID:     input.PromotionID,
		UserInputs:      input.Inputs,
		TrxID:           validation.FindTrxID(input.Inputs),
		Status:          models.TransactionStatusPending,
		Metadata:        methodSnapshot(method),
	}
	if input.IdempotencyKey != "" {
		key := input.IdempotencyKey
		txn.IdempotencyKey = &key
	}

	if err := s.txnRepo.Create(txn); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return s.existingByKey(input.IdempotencyKey)
		}
		return nil, err
	}

	s.metrics.TransactionCreated(models.TransactionTypeDeposit)
	return txn, nil
}

// CreateWithdrawal debits the user's balance immediately so the funds
// cannot be spent twice while the request awaits review. A rejection
// refunds the debit.
func (s *service) CreateWithdrawal(ctx context.Context, input CreateWithdrawalInput) (*models.Transaction, error) {
	method, err := s.resolveMethod(input.PaymentMethodID, models.MethodKindWithdraw, input.Channel)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateAmount(input.Amount, method.MinAmount, method.MaxAmount); err != nil {
		return nil, err
	}
	if err := validation.ValidateRequiredInputs(method.UserInputs, input.Inputs); err != nil {
		return nil, err
	}

	if existing, err := s.claimIdempotencyKey(ctx, input.IdempotencyKey); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	txn := &models.Transaction{
		Reference:       utils.GenerateTransactionReference(models.TransactionTypeWithdrawal),
		Type:            models.TransactionTypeWithdrawal,
		UserID:          input.UserID,
		PaymentMethodID: method.ID,
		Channel:         input.Channel,
		Amount:          input.Amount,
		UserInputs:      input.Inputs,
		Status:          models.TransactionStatusPending,
		Metadata:        methodSnapshot(method),
	}
	if input.IdempotencyKey != "" {
		key := input.IdempotencyKey
		txn.IdempotencyKey = &key
	}

	err = s.txnRepo.ExecuteInTransaction(func(repo repositories.TransactionRepository) error {
		user, err := repo.GetUserForUpdate(input.UserID)
		if err != nil {
			return err
		}
		if user.Balance < input.Amount {
			return ErrInsufficientBalance
		}
		user.Balance -= input.Amount
		if err := repo.SaveUser(user); err != nil {
			return err
		}
		return repo.Create(txn)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return s.existingByKey(input.IdempotencyKey)
		}
		return nil, err
	}

	s.invalidateUser(input.UserID)
	s.metrics.TransactionCreated(models.TransactionTypeWithdrawal)
	return txn, nil
}

// Complete finalizes a pending transaction. Completing an already completed
// transaction is a no-op returning the current state; any other terminal
// state is an error. Deposits credit the user's balance exactly once, and
// the referrer's deposit commission with it.
func (s *service) Complete(id uint, note string) (*models.Transaction, error) {
	var result *models.Transaction
	var affected []uint
	completedNow := false

	err := s.txnRepo.ExecuteInTransaction(func(repo repositories.TransactionRepository) error {
		txn, err := repo.GetByID(id)
		if err != nil {
			return err
		}
		if txn.Status == models.TransactionStatusCompleted {
			result = txn
			return nil
		}
		if txn.Terminal() {
			return ErrInvalidTransition
		}

		if txn.Type == models.TransactionTypeDeposit {
			user, err := repo.GetUserForUpdate(txn.UserID)
			if err != nil {
				return err
			}
			user.Balance += txn.Amount
			if err := repo.SaveUser(user); err != nil {
				return err
			}
			affected = append(affected, user.ID)

			if user.ReferredBy != nil {
				referrer, err := repo.GetUserForUpdate(*user.ReferredBy)
				if err == nil && referrer.DepositCommission > 0 {
					referrer.DepositCommissionBalance += txn.Amount * referrer.DepositCommission / 100
					if err := repo.SaveUser(referrer); err != nil {
						return err
					}
					affected = append(affected, referrer.ID)
				}
			}
		}

		now := time.Now()
		txn.Status = models.TransactionStatusCompleted
		txn.CompletedAt = &now
		if note != "" {
			txn.Note = note
		}
		if err := repo.Save(txn); err != nil {
			return err
		}
		result = txn
		completedNow = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, userID := range affected {
		s.invalidateUser(userID)
	}
	if completedNow {
		s.metrics.TransactionCompleted(result.Type)
	}
	return result, nil
}

// Reject finalizes a pending transaction as rejected. Rejected withdrawals
// refund the balance debited at request time.
func (s *service) Reject(id uint, note string) (*models.Transaction, error) {
	return s.finalize(id, models.TransactionStatusRejected, note)
}

// Expire marks a pending transaction expired. Used by the auto-payment
// verifier when no matching confirmation arrives within the claim window.
func (s *service) Expire(id uint) (*models.Transaction, error) {
	return s.finalize(id, models.TransactionStatusExpired, "")
}

func (s *service) finalize(id uint, status, note string) (*models.Transaction, error) {
	var result *models.Transaction
	var refunded uint

	err := s.txnRepo.ExecuteInTransaction(func(repo repositories.TransactionRepository) error {
		txn, err := repo.GetByID(id)
		if err != nil {
			return err
		}
		if txn.Terminal() {
			return ErrInvalidTransition
		}

		if txn.Type == models.TransactionTypeWithdrawal {
			user, err := repo.GetUserForUpdate(txn.UserID)
			if err != nil {
				return err
			}
			user.Balance += txn.Amount
			if err := repo.SaveUser(user); err != nil {
				return err
			}
			refunded = user.ID
		}

		txn.Status = status
		if note != "" {
			txn.Note = note
		}
		if err := repo.Save(txn); err != nil {
			return err
		}
		result = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	if refunded != 0 {
		s.invalidateUser(refunded)
	}
	if status == models.TransactionStatusRejected {
		s.metrics.TransactionRejected(result.Type)
	}
	return result, nil
}

func (s *service) Get(id uint) (*models.Transaction, error) {
	return s.txnRepo.GetByID(id)
}

func (s *service) ListByUser(userID uint, limit, offset int) ([]models.Transaction, error) {
	return s.txnRepo.ListByUser(userID, limit, offset)
}

func (s *service) List(filter repositories.TransactionFilter) ([]models.Transaction, int64, error) {
	return s.txnRepo.List(filter)
}

func (s *service) Stats(txType string) (*models.TransactionStats, error) {
	return s.txnRepo.Stats(txType)
}

// methodSnapshot freezes the method's display names onto the transaction
// so admin listings survive registry edits and deletions.
func methodSnapshot(method *models.PaymentMethod) models.JSON {
	return models.NewJSON(map[string]interface{}{
		"methodName":   method.MethodName,
		"methodNameBD": method.MethodNameBD,
	})
}

func (s *service) resolveMethod(id uint, kind, channel string) (*models.PaymentMethod, error) {
	method, err := s.methodRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if method.Status != "active" || method.Kind != kind {
		return nil, ErrMethodUnavailable
	}
	if channel == "" || !method.HasGateway(channel) {
		return nil, ErrUnknownChannel
	}
	return method, nil
}

// claimIdempotencyKey returns the existing transaction when the key was
// already used, nil when the key is fresh or absent.
func (s *service) claimIdempotencyKey(ctx context.Context, key string) (*models.Transaction, error) {
	if key == "" || s.guard == nil {
		return nil, nil
	}
	acquired, err := s.guard.SetNX(ctx, "idem:"+key, 1, 10*time.Minute)
	if err != nil {
		// Redis being down degrades to the database unique index.
		log.Printf("Idempotency guard unavailable: %v", err)
		return nil, nil
	}
	if acquired {
		return nil, nil
	}
	// A held guard key with no transaction behind it means an earlier
	// attempt failed after claiming the key. Create fresh; the unique
	// index still catches a true concurrent duplicate.
	txn, err := s.txnRepo.GetByIdempotencyKey(key)
	if err != nil {
		return nil, nil
	}
	return txn, nil
}

func (s *service) existingByKey(key string) (*models.Transaction, error) {
	if key == "" {
		return nil, ErrDuplicateRequest
	}
	txn, err := s.txnRepo.GetByIdempotencyKey(key)
	if err != nil {
		return nil, ErrDuplicateRequest
	}
	return txn, nil
}

func (s *service) invalidateUser(userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUser(context.Background(), userID); err != nil {
		log.Printf("Failed to invalidate user %d cache: %v", userID, err)
	}
}
