package repositories

import (
	"errors"

	"tkbet/internal/models"

	"gorm.io/gorm"
)

// GameRepository defines the data access contract for games.
type GameRepository interface {
	Create(g *models.Game) error
	Update(g *models.Game) error
	Delete(id uint) error
	GetByID(id uint) (*models.Game, error)
	GetByAPIID(apiID string) (*models.Game, error)
	ListHot() ([]models.Game, error)
	List(limit, offset int) ([]models.Game, int64, error)
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(g *models.Game) error {
	return r.db.Create(g).Error
}

func (r *gameRepository) Update(g *models.Game) error {
	return r.db.Save(g).Error
}

func (r *gameRepository) Delete(id uint) error {
	return r.db.Delete(&models.Game{}, id).Error
}

func (r *gameRepository) GetByID(id uint) (*models.Game, error) {
	var g models.Game
	if err := r.db.First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *gameRepository) GetByAPIID(apiID string) (*models.Game, error) {
	var g models.Game
	if err := r.db.Where("game_api_id = ?", apiID).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *gameRepository) ListHot() ([]models.Game, error) {
	var games []models.Game
	err := r.db.Where("is_hot_game = ?", true).Order("id ASC").Find(&games).Error
	return games, err
}

func (r *gameRepository) List(limit, offset int) ([]models.Game, int64, error) {
	var games []models.Game
	var total int64

	if err := r.db.Model(&models.Game{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("id ASC").Limit(limit).Offset(offset).Find(&games).Error
	return games, total, err
}
