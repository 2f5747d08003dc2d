package repositories

import (
	"errors"

	"tkbet/internal/models"

	"gorm.io/gorm"
)

// AutoPaymentRepository defines the data access contract for
// auto-payment claims.
type AutoPaymentRepository interface {
	Create(c *models.AutoPaymentClaim) error
	Save(c *models.AutoPaymentClaim) error
	GetByTransactionID(txnID uint) (*models.AutoPaymentClaim, error)
	ListPending() ([]models.AutoPaymentClaim, error)
}

type autoPaymentRepository struct {
	db *gorm.DB
}

func NewAutoPaymentRepository(db *gorm.DB) AutoPaymentRepository {
	return &autoPaymentRepository{db: db}
}

func (r *autoPaymentRepository) Create(c *models.AutoPaymentClaim) error {
	if err := r.db.Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (r *autoPaymentRepository) Save(c *models.AutoPaymentClaim) error {
	return r.db.Save(c).Error
}

func (r *autoPaymentRepository) GetByTransactionID(txnID uint) (*models.AutoPaymentClaim, error) {
	var c models.AutoPaymentClaim
	if err := r.db.Where("transaction_id = ?", txnID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *autoPaymentRepository) ListPending() ([]models.AutoPaymentClaim, error) {
	var claims []models.AutoPaymentClaim
	err := r.db.Where("status = ?", models.ClaimStatusPending).
		Order("created_at ASC").Find(&claims).Error
	return claims, err
}
