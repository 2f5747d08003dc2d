// Package dashboard aggregates the counters shown on the admin overview.
package dashboard

import (
	"tkbet/internal/models"
	"tkbet/internal/repositories"
)

type Service interface {
	CountUsers() (int64, error)
	CountAffiliates() (int64, error)
	DepositStats() (*models.TransactionStats, error)
	WithdrawStats() (*models.TransactionStats, error)
}

type service struct {
	userRepo repositories.UserRepository
	txnRepo  repositories.TransactionRepository
}

func NewService(userRepo repositories.UserRepository, txnRepo repositories.TransactionRepository) Service {
	return &service{
		userRepo: userRepo,
		txnRepo:  txnRepo,
	}
}

func (s *service) CountUsers() (int64, error) {
	return s.userRepo.CountByRole(models.RoleUser)
}

func (s *service) CountAffiliates() (int64, error) {
	return s.userRepo.CountByRole(models.RoleAffiliate)
}

func (s *service) DepositStats() (*models.TransactionStats, error) {
	return s.txnRepo.Stats(models.TransactionTypeDeposit)
}

func (s *service) WithdrawStats() (*models.TransactionStats, error) {
	return s.txnRepo.Stats(models.TransactionTypeWithdrawal)
}
