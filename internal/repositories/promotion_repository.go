package repositories

import (
	"errors"

	"tkbet/internal/models"

	"gorm.io/gorm"
)

// PromotionRepository defines the data access contract for promotions.
type PromotionRepository interface {
	Create(p *models.Promotion) error
	Update(p *models.Promotion) error
	Delete(id uint) error
	GetByID(id uint) (*models.Promotion, error)
	ListActive() ([]models.Promotion, error)
	List() ([]models.Promotion, error)
}

type promotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) PromotionRepository {
	return &promotionRepository{db: db}
}

func (r *promotionRepository) Create(p *models.Promotion) error {
	return r.db.Create(p).Error
}

func (r *promotionRepository) Update(p *models.Promotion) error {
	return r.db.Save(p).Error
}

func (r *promotionRepository) Delete(id uint) error {
	return r.db.Delete(&models.Promotion{}, id).Error
}

func (r *promotionRepository) GetByID(id uint) (*models.Promotion, error) {
	var p models.Promotion
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *promotionRepository) ListActive() ([]models.Promotion, error) {
	var promos []models.Promotion
	err := r.db.Where("status = ?", "active").Order("id ASC").Find(&promos).Error
	return promos, err
}

func (r *promotionRepository) List() ([]models.Promotion, error) {
	var promos []models.Promotion
	err := r.db.Order("id ASC").Find(&promos).Error
	return promos, err
}
