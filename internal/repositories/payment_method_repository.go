package repositories

import (
	"errors"

	"tkbet/internal/models"

	"gorm.io/gorm"
)

// PaymentMethodRepository defines the data access contract for the
// payment method registry.
type PaymentMethodRepository interface {
	Create(m *models.PaymentMethod) error
	Update(m *models.PaymentMethod) error
	Delete(id uint) error
	GetByID(id uint) (*models.PaymentMethod, error)
	ListActive(kind string) ([]models.PaymentMethod, error)
	List() ([]models.PaymentMethod, error)
}

type paymentMethodRepository struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) Create(m *models.PaymentMethod) error {
	return r.db.Create(m).Error
}

func (r *paymentMethodRepository) Update(m *models.PaymentMethod) error {
	return r.db.Save(m).Error
}

func (r *paymentMethodRepository) Delete(id uint) error {
	return r.db.Delete(&models.PaymentMethod{}, id).Error
}

func (r *paymentMethodRepository) GetByID(id uint) (*models.PaymentMethod, error) {
	var m models.PaymentMethod
	if err := r.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *paymentMethodRepository) ListActive(kind string) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	q := r.db.Where("status = ?", "active")
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	err := q.Order("id ASC").Find(&methods).Error
	return methods, err
}

func (r *paymentMethodRepository) List() ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	err := r.db.Order("id ASC").Find(&methods).Error
	return methods, err
}
