package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"tkbet/internal/models"
	"tkbet/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTxnRepo is an in-memory TransactionRepository. ExecuteInTransaction
// runs the callback against the same store; rollback is simulated by
// snapshotting users and transactions before the callback.
type fakeTxnRepo struct {
	txns      map[uint]*models.Transaction
	users     map[uint]*models.User
	nextID    uint
	createErr error // returned by the next Create, then cleared
}

func newFakeTxnRepo() *fakeTxnRepo {
	return &fakeTxnRepo{
		txns:   make(map[uint]*models.Transaction),
		users:  make(map[uint]*models.User),
		nextID: 1,
	}
}

func (f *fakeTxnRepo) Create(txn *models.Transaction) error {
	if f.createErr != nil {
		err := f.createErr
		f.createErr = nil
		return err
	}
	if txn.IdempotencyKey != nil {
		for _, existing := range f.txns {
			if existing.IdempotencyKey != nil && *existing.IdempotencyKey == *txn.IdempotencyKey {
				return repositories.ErrDuplicateKey
			}
		}
	}
	txn.ID = f.nextID
	f.nextID++
	txn.CreatedAt = time.Now()
	cp := *txn
	f.txns[txn.ID] = &cp
	return nil
}

func (f *fakeTxnRepo) Save(txn *models.Transaction) error {
	cp := *txn
	f.txns[txn.ID] = &cp
	return nil
}

func (f *fakeTxnRepo) GetByID(id uint) (*models.Transaction, error) {
	txn, ok := f.txns[id]
	if !ok {
		return nil, repositories.ErrTransactionNotFound
	}
	cp := *txn
	return &cp, nil
}

func (f *fakeTxnRepo) GetByIdempotencyKey(key string) (*models.Transaction, error) {
	for _, txn := range f.txns {
		if txn.IdempotencyKey != nil && *txn.IdempotencyKey == key {
			cp := *txn
			return &cp, nil
		}
	}
	return nil, repositories.ErrTransactionNotFound
}

func (f *fakeTxnRepo) ListByUser(userID uint, limit, offset int) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, txn := range f.txns {
		if txn.UserID == userID {
			out = append(out, *txn)
		}
	}
	return out, nil
}

func (f *fakeTxnRepo) List(filter repositories.TransactionFilter) ([]models.Transaction, int64, error) {
	var out []models.Transaction
	for _, txn := range f.txns {
		if filter.Type != "" && txn.Type != filter.Type {
			continue
		}
		if filter.Status != "" && txn.Status != filter.Status {
			continue
		}
		out = append(out, *txn)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTxnRepo) Stats(txType string) (*models.TransactionStats, error) {
	return &models.TransactionStats{}, nil
}

func (f *fakeTxnRepo) GetUserForUpdate(userID uint) (*models.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeTxnRepo) SaveUser(user *models.User) error {
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeTxnRepo) ExecuteInTransaction(fn func(repositories.TransactionRepository) error) error {
	userSnap := make(map[uint]*models.User, len(f.users))
	for id, u := range f.users {
		cp := *u
		userSnap[id] = &cp
	}
	txnSnap := make(map[uint]*models.Transaction, len(f.txns))
	for id, t := range f.txns {
		cp := *t
		txnSnap[id] = &cp
	}
	if err := fn(f); err != nil {
		f.users = userSnap
		f.txns = txnSnap
		return err
	}
	return nil
}

type fakeMethodRepo struct {
	methods map[uint]*models.PaymentMethod
}

func (f *fakeMethodRepo) Create(m *models.PaymentMethod) error { return nil }
func (f *fakeMethodRepo) Update(m *models.PaymentMethod) error { return nil }
func (f *fakeMethodRepo) Delete(id uint) error                 { return nil }
func (f *fakeMethodRepo) GetByID(id uint) (*models.PaymentMethod, error) {
	m, ok := f.methods[id]
	if !ok {
		return nil, repositories.ErrPaymentMethodNotFound
	}
	return m, nil
}
func (f *fakeMethodRepo) ListActive(kind string) ([]models.PaymentMethod, error) { return nil, nil }
func (f *fakeMethodRepo) List() ([]models.PaymentMethod, error)                  { return nil, nil }

type fakePromoRepo struct {
	promos map[uint]*models.Promotion
}

func (f *fakePromoRepo) Create(p *models.Promotion) error { return nil }
func (f *fakePromoRepo) Update(p *models.Promotion) error { return nil }
func (f *fakePromoRepo) Delete(id uint) error             { return nil }
func (f *fakePromoRepo) GetByID(id uint) (*models.Promotion, error) {
	p, ok := f.promos[id]
	if !ok {
		return nil, repositories.ErrPromotionNotFound
	}
	return p, nil
}
func (f *fakePromoRepo) ListActive() ([]models.Promotion, error) { return nil, nil }
func (f *fakePromoRepo) List() ([]models.Promotion, error)       { return nil, nil }

type countingMetrics struct {
	created   map[string]int
	completed map[string]int
	rejected  map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{
		created:   make(map[string]int),
		completed: make(map[string]int),
		rejected:  make(map[string]int),
	}
}

func (m *countingMetrics) TransactionCreated(t string)   { m.created[t]++ }
func (m *countingMetrics) TransactionCompleted(t string) { m.completed[t]++ }
func (m *countingMetrics) TransactionRejected(t string)  { m.rejected[t]++ }

// fakeGuard is an in-memory SETNX.
type fakeGuard struct {
	keys map[string]bool
}

func newFakeGuard() *fakeGuard {
	return &fakeGuard{keys: make(map[string]bool)}
}

func (g *fakeGuard) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	if g.keys[key] {
		return false, nil
	}
	g.keys[key] = true
	return true, nil
}

func newTestService(t *testing.T) (Service, *fakeTxnRepo, *countingMetrics) {
	return newTestServiceWithGuard(t, nil)
}

func newTestServiceWithGuard(t *testing.T, guard IdempotencyGuard) (Service, *fakeTxnRepo, *countingMetrics) {
	t.Helper()

	txnRepo := newFakeTxnRepo()
	txnRepo.users[1] = &models.User{Balance: 1000}
	txnRepo.users[1].ID = 1

	depositMethod := &models.PaymentMethod{
		MethodName: "bKash Personal",
		Kind:       models.MethodKindDeposit,
		Gateways:   models.StringSlice{"bKash"},
		MinAmount:  100,
		MaxAmount:  25000,
		UserInputs: models.UserInputList{
			{Name: "trxId", Label: "Transaction ID", Type: "text", IsRequired: true},
		},
		Status: "active",
	}
	depositMethod.ID = 10

	withdrawMethod := &models.PaymentMethod{
		MethodName: "bKash Withdraw",
		Kind:       models.MethodKindWithdraw,
		Gateways:   models.StringSlice{"bKash"},
		MinAmount:  100,
		MaxAmount:  25000,
		UserInputs: models.UserInputList{
			{Name: "walletNumber", Label: "Wallet Number", Type: "tel", IsRequired: true},
		},
		Status: "active",
	}
	withdrawMethod.ID = 20

	methodRepo := &fakeMethodRepo{methods: map[uint]*models.PaymentMethod{
		10: depositMethod,
		20: withdrawMethod,
	}}
	promoRepo := &fakePromoRepo{promos: map[uint]*models.Promotion{}}
	metrics := newCountingMetrics()

	return NewService(txnRepo, methodRepo, promoRepo, guard, nil, metrics), txnRepo, metrics
}

func depositInput() CreateDepositInput {
	return CreateDepositInput{
		UserID:          1,
		PaymentMethodID: 10,
		Channel:         "bKash",
		Amount:          500,
		Inputs: []models.InputValue{
			{Name: "trxId", Value: "TX9A1B2C"},
		},
	}
}

func TestCreateDeposit(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, repo, metrics := newTestService(t)

		txn, err := svc.CreateDeposit(context.Background(), depositInput())
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusPending, txn.Status)
		assert.Equal(t, "TX9A1B2C", txn.TrxID)
		assert.NotEmpty(t, txn.Reference)

		// Creation never touches the balance.
		assert.Equal(t, float64(1000), repo.users[1].Balance)
		assert.Equal(t, 1, metrics.created[models.TransactionTypeDeposit])

		// The method name is snapshotted for admin listings.
		assert.Equal(t, "bKash Personal", txn.Metadata["methodName"])
	})

	t.Run("AmountOutOfRange", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		input := depositInput()
		input.Amount = 50
		_, err := svc.CreateDeposit(context.Background(), input)
		assert.Error(t, err)
		assert.Empty(t, repo.txns)
	})

	t.Run("MissingRequiredInput", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		input := depositInput()
		input.Inputs = nil
		_, err := svc.CreateDeposit(context.Background(), input)
		assert.Error(t, err)
		assert.Empty(t, repo.txns)
	})

	t.Run("WrongChannel", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		input := depositInput()
		input.Channel = "Nagad"
		_, err := svc.CreateDeposit(context.Background(), input)
		assert.ErrorIs(t, err, ErrUnknownChannel)
	})

	t.Run("WithdrawMethodRejected", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		input := depositInput()
		input.PaymentMethodID = 20
		_, err := svc.CreateDeposit(context.Background(), input)
		assert.ErrorIs(t, err, ErrMethodUnavailable)
	})

	t.Run("DuplicateIdempotencyKeyReturnsOriginal", func(t *testing.T) {
		svc, repo, metrics := newTestService(t)

		input := depositInput()
		input.IdempotencyKey = "key-1"

		first, err := svc.CreateDeposit(context.Background(), input)
		require.NoError(t, err)

		second, err := svc.CreateDeposit(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		assert.Len(t, repo.txns, 1)
		assert.Equal(t, 1, metrics.created[models.TransactionTypeDeposit])
	})

	t.Run("RetryAfterFailedCreate", func(t *testing.T) {
		svc, repo, _ := newTestServiceWithGuard(t, newFakeGuard())

		input := depositInput()
		input.IdempotencyKey = "key-2"

		repo.createErr = errors.New("connection reset by peer")
		_, err := svc.CreateDeposit(context.Background(), input)
		require.Error(t, err)
		assert.Empty(t, repo.txns)

		// The guard key is held but nothing was written, so the same
		// key must not be treated as a duplicate.
		txn, err := svc.CreateDeposit(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusPending, txn.Status)
		assert.Len(t, repo.txns, 1)
	})

	t.Run("GuardedReplayReturnsOriginal", func(t *testing.T) {
		svc, repo, _ := newTestServiceWithGuard(t, newFakeGuard())

		input := depositInput()
		input.IdempotencyKey = "key-3"

		first, err := svc.CreateDeposit(context.Background(), input)
		require.NoError(t, err)

		second, err := svc.CreateDeposit(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, repo.txns, 1)
	})
}

func TestCreateWithdrawal(t *testing.T) {
	withdrawInput := func() CreateWithdrawalInput {
		return CreateWithdrawalInput{
			UserID:          1,
			PaymentMethodID: 20,
			Channel:         "bKash",
			Amount:          400,
			Inputs: []models.InputValue{
				{Name: "walletNumber", Value: "01712345678"},
			},
		}
	}

	t.Run("DebitsBalanceAtRequest", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		txn, err := svc.CreateWithdrawal(context.Background(), withdrawInput())
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusPending, txn.Status)
		assert.Equal(t, float64(600), repo.users[1].Balance)
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		input := withdrawInput()
		input.Amount = 5000
		_, err := svc.CreateWithdrawal(context.Background(), input)
		assert.ErrorIs(t, err, ErrInsufficientBalance)

		// Nothing written, nothing debited.
		assert.Equal(t, float64(1000), repo.users[1].Balance)
		assert.Empty(t, repo.txns)
	})
}

func TestComplete(t *testing.T) {
	t.Run("DepositCreditsExactlyOnce", func(t *testing.T) {
		svc, repo, metrics := newTestService(t)

		txn, err := svc.CreateDeposit(context.Background(), depositInput())
		require.NoError(t, err)

		completed, err := svc.Complete(txn.ID, "verified")
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusCompleted, completed.Status)
		require.NotNil(t, completed.CompletedAt)
		assert.Equal(t, float64(1500), repo.users[1].Balance)

		// Completing again is a no-op, not a second credit.
		again, err := svc.Complete(txn.ID, "verified")
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusCompleted, again.Status)
		assert.Equal(t, float64(1500), repo.users[1].Balance)
		assert.Equal(t, 1, metrics.completed[models.TransactionTypeDeposit])
	})

	t.Run("DepositPaysReferrerCommission", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		referrer := &models.User{DepositCommission: 5}
		referrer.ID = 2
		repo.users[2] = referrer
		referrerID := uint(2)
		repo.users[1].ReferredBy = &referrerID

		txn, err := svc.CreateDeposit(context.Background(), depositInput())
		require.NoError(t, err)

		_, err = svc.Complete(txn.ID, "")
		require.NoError(t, err)

		assert.Equal(t, float64(1500), repo.users[1].Balance)
		assert.Equal(t, float64(25), repo.users[2].DepositCommissionBalance) // 5% of 500
	})

	t.Run("RejectedCannotComplete", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		txn, err := svc.CreateDeposit(context.Background(), depositInput())
		require.NoError(t, err)

		_, err = svc.Reject(txn.ID, "no matching payment")
		require.NoError(t, err)

		_, err = svc.Complete(txn.ID, "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, float64(1000), repo.users[1].Balance)
	})
}

func TestReject(t *testing.T) {
	t.Run("WithdrawalRefundsDebit", func(t *testing.T) {
		svc, repo, metrics := newTestService(t)

		txn, err := svc.CreateWithdrawal(context.Background(), CreateWithdrawalInput{
			UserID:          1,
			PaymentMethodID: 20,
			Channel:         "bKash",
			Amount:          400,
			Inputs: []models.InputValue{
				{Name: "walletNumber", Value: "01712345678"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, float64(600), repo.users[1].Balance)

		rejected, err := svc.Reject(txn.ID, "wrong wallet")
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusRejected, rejected.Status)
		assert.Equal(t, "wrong wallet", rejected.Note)
		assert.Equal(t, float64(1000), repo.users[1].Balance)
		assert.Equal(t, 1, metrics.rejected[models.TransactionTypeWithdrawal])
	})

	t.Run("DepositRejectLeavesBalanceAlone", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		txn, err := svc.CreateDeposit(context.Background(), depositInput())
		require.NoError(t, err)

		_, err = svc.Reject(txn.ID, "")
		require.NoError(t, err)
		assert.Equal(t, float64(1000), repo.users[1].Balance)
	})
}

func TestExpire(t *testing.T) {
	svc, repo, _ := newTestService(t)

	txn, err := svc.CreateDeposit(context.Background(), depositInput())
	require.NoError(t, err)

	expired, err := svc.Expire(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusExpired, expired.Status)
	assert.Equal(t, float64(1000), repo.users[1].Balance)

	// Expiry is terminal too.
	_, err = svc.Complete(txn.ID, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
