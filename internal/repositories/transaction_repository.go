package repositories

import (
	"errors"
	"time"

	"tkbet/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransactionFilter narrows admin transaction listings.
type TransactionFilter struct {
	Type   string
	Status string
	UserID uint
	Limit  int
	Offset int
}

// TransactionRepository defines the data access contract for transactions.
// ExecuteInTransaction runs fn against a repository bound to one database
// transaction; balance mutations and status flips always go through it.
type TransactionRepository interface {
	Create(txn *models.Transaction) error
	Save(txn *models.Transaction) error
	GetByID(id uint) (*models.Transaction, error)
	GetByIdempotencyKey(key string) (*models.Transaction, error)
	ListByUser(userID uint, limit, offset int) ([]models.Transaction, error)
	List(filter TransactionFilter) ([]models.Transaction, int64, error)
	Stats(txType string) (*models.TransactionStats, error)
	GetUserForUpdate(userID uint) (*models.User, error)
	SaveUser(user *models.User) error
	ExecuteInTransaction(fn func(TransactionRepository) error) error
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(txn *models.Transaction) error {
	if err := r.db.Create(txn).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (r *transactionRepository) Save(txn *models.Transaction) error {
	return r.db.Save(txn).Error
}

func (r *transactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.db.First(&txn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) GetByIdempotencyKey(key string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.db.Where("idempotency_key = ?", key).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) ListByUser(userID uint, limit, offset int) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&txns).Error
	return txns, err
}

func (r *transactionRepository) List(filter TransactionFilter) ([]models.Transaction, int64, error) {
	q := r.db.Model(&models.Transaction{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.UserID != 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txns []models.Transaction
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(filter.Offset).Find(&txns).Error
	return txns, total, err
}

func (r *transactionRepository) Stats(txType string) (*models.TransactionStats, error) {
	stats := &models.TransactionStats{}
	base := r.db.Model(&models.Transaction{}).Where("type = ?", txType)

	if err := base.Session(&gorm.Session{}).Where("status = ?", models.TransactionStatusCompleted).
		Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	var totalAmount struct{ Sum float64 }
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.TransactionStatusCompleted).
		Select("COALESCE(SUM(amount), 0) AS sum").Scan(&totalAmount).Error; err != nil {
		return nil, err
	}
	stats.TotalAmount = totalAmount.Sum

	startOfDay := time.Now().UTC().Truncate(24 * time.Hour)
	if err := base.Session(&gorm.Session{}).
		Where("status = ? AND created_at >= ?", models.TransactionStatusCompleted, startOfDay).
		Count(&stats.Today).Error; err != nil {
		return nil, err
	}

	var todayAmount struct{ Sum float64 }
	if err := base.Session(&gorm.Session{}).
		Where("status = ? AND created_at >= ?", models.TransactionStatusCompleted, startOfDay).
		Select("COALESCE(SUM(amount), 0) AS sum").Scan(&todayAmount).Error; err != nil {
		return nil, err
	}
	stats.TodayAmount = todayAmount.Sum

	if err := base.Session(&gorm.Session{}).Where("status = ?", models.TransactionStatusPending).
		Count(&stats.Pending).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *transactionRepository) GetUserForUpdate(userID uint) (*models.User, error) {
	var user models.User
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *transactionRepository) SaveUser(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *transactionRepository) ExecuteInTransaction(fn func(TransactionRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&transactionRepository{db: tx})
	})
}
