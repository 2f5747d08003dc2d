// Package registry serves the payment method and promotion configuration
// that drives both the admin panel and the storefront deposit/withdraw pages.
package registry

import (
	"context"
	"log"

	"tkbet/internal/models"
	"tkbet/internal/repositories"
)

// MethodCache is the slice of the cache service the registry needs.
type MethodCache interface {
	CachePaymentMethods(ctx context.Context, kind string, methods []models.PaymentMethod) error
	GetPaymentMethods(ctx context.Context, kind string) ([]models.PaymentMethod, bool)
	InvalidatePaymentMethods(ctx context.Context) error
}

type Service interface {
	// Storefront reads.
	ListActiveMethods(ctx context.Context, kind string) ([]models.PaymentMethod, error)
	ListActivePromotions() ([]models.Promotion, error)
	DepositTabs(ctx context.Context, lang string) ([]Tab, error)
	GetMethod(id uint) (*models.PaymentMethod, error)

	// Admin writes. Every write invalidates the registry cache.
	ListMethods() ([]models.PaymentMethod, error)
	CreateMethod(m *models.PaymentMethod) error
	UpdateMethod(m *models.PaymentMethod) error
	DeleteMethod(id uint) error
	ListPromotions() ([]models.Promotion, error)
	GetPromotion(id uint) (*models.Promotion, error)
	CreatePromotion(p *models.Promotion) error
	UpdatePromotion(p *models.Promotion) error
	DeletePromotion(id uint) error
}

type service struct {
	methodRepo repositories.PaymentMethodRepository
	promoRepo  repositories.PromotionRepository
	cache      MethodCache
}

func NewService(methodRepo repositories.PaymentMethodRepository, promoRepo repositories.PromotionRepository, cache MethodCache) Service {
	return &service{
		methodRepo: methodRepo,
		promoRepo:  promoRepo,
		cache:      cache,
	}
}

func (s *service) ListActiveMethods(ctx context.Context, kind string) ([]models.PaymentMethod, error) {
	if s.cache != nil {
		if methods, ok := s.cache.GetPaymentMethods(ctx, kind); ok {
			return methods, nil
		}
	}

	methods, err := s.methodRepo.ListActive(kind)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.CachePaymentMethods(ctx, kind, methods); err != nil {
			log.Printf("Failed to cache payment methods: %v", err)
		}
	}
	return methods, nil
}

func (s *service) ListActivePromotions() ([]models.Promotion, error) {
	return s.promoRepo.ListActive()
}

func (s *service) DepositTabs(ctx context.Context, lang string) ([]Tab, error) {
	methods, err := s.ListActiveMethods(ctx, models.MethodKindDeposit)
	if err != nil {
		return nil, err
	}
	promos, err := s.promoRepo.ListActive()
	if err != nil {
		return nil, err
	}
	return BuildTabs(methods, promos, lang), nil
}

func (s *service) GetMethod(id uint) (*models.PaymentMethod, error) {
	return s.methodRepo.GetByID(id)
}

func (s *service) ListMethods() ([]models.PaymentMethod, error) {
	return s.methodRepo.List()
}

func (s *service) CreateMethod(m *models.PaymentMethod) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := s.methodRepo.Create(m); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *service) UpdateMethod(m *models.PaymentMethod) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := s.methodRepo.Update(m); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *service) DeleteMethod(id uint) error {
	if err := s.methodRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *service) ListPromotions() ([]models.Promotion, error) {
	return s.promoRepo.List()
}

func (s *service) GetPromotion(id uint) (*models.Promotion, error) {
	return s.promoRepo.GetByID(id)
}

func (s *service) CreatePromotion(p *models.Promotion) error {
	return s.promoRepo.Create(p)
}

func (s *service) UpdatePromotion(p *models.Promotion) error {
	return s.promoRepo.Update(p)
}

func (s *service) DeletePromotion(id uint) error {
	return s.promoRepo.Delete(id)
}

func (s *service) invalidate() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePaymentMethods(context.Background()); err != nil {
		log.Printf("Failed to invalidate payment method cache: %v", err)
	}
}
