package user

import (
	"errors"
	"log"

	"tkbet/internal/models"
	"tkbet/internal/repositories"
	"tkbet/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrPhoneTaken      = errors.New("phone already registered")
	ErrNegativeBalance = errors.New("balances cannot be negative")
	ErrInvalidReferral = errors.New("invalid referral code")
)

// RegisterInput is the signup payload.
type RegisterInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
	ReferralCode string `json:"referralCode"`
}

// AdminUpdateInput carries the fields an admin may edit on a user account.
// Pointer fields distinguish "leave unchanged" from "set to zero".
type AdminUpdateInput struct {
	Name                      *string  `json:"name"`
	Status                    *string  `json:"status"`
	Role                      *string  `json:"role"`
	Balance                   *float64 `json:"balance"`
	CommissionBalance         *float64 `json:"commissionBalance"`
	DepositCommission         *float64 `json:"depositCommission"`
	DepositCommissionBalance  *float64 `json:"depositCommissionBalance"`
	ReferCommission           *float64 `json:"referCommission"`
	ReferCommissionBalance    *float64 `json:"referCommissionBalance"`
	GameLossCommission        *float64 `json:"gameLossCommission"`
	GameLossCommissionBalance *float64 `json:"gameLossCommissionBalance"`
}

type Service interface {
	Register(input RegisterInput) (*models.User, error)
	Get(userID uint) (*models.User, error)
	List(limit, offset int) ([]models.User, int64, error)
	AdminUpdate(userID uint, input AdminUpdateInput) (*models.User, error)
	Balance(userID uint) (models.BalanceSnapshot, error)
}

type service struct {
	userRepo repositories.UserRepository
}

func NewService(userRepo repositories.UserRepository) Service {
	return &service{userRepo: userRepo}
}

func (s *service) Register(input RegisterInput) (*models.User, error) {
	if input.Name == "" || input.Email == "" || input.Phone == "" {
		return nil, errors.New("name, email and phone are required")
	}
	if len(input.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	if _, err := s.userRepo.GetByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	}
	if _, err := s.userRepo.GetByPhone(input.Phone); err == nil {
		return nil, ErrPhoneTaken
	}

	var referredBy *uint
	if input.ReferralCode != "" {
		referrer, err := s.userRepo.GetByReferralCode(input.ReferralCode)
		if err != nil {
			return nil, ErrInvalidReferral
		}
		referredBy = &referrer.ID
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Password:     string(hashedPassword),
		PlayerID:     utils.GeneratePlayerID(),
		Role:         models.RoleUser,
		Status:       "active",
		ReferralCode: utils.GenerateReferralCode(),
		ReferredBy:   referredBy,
		TokenVersion: 1,
	}

	if err := s.userRepo.Create(user); err != nil {
		log.Printf("Failed to create user %s: %v", input.Email, err)
		return nil, errors.New("failed to create user")
	}
	return user, nil
}

func (s *service) Get(userID uint) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

func (s *service) List(limit, offset int) ([]models.User, int64, error) {
	return s.userRepo.List(limit, offset)
}

// AdminUpdate applies the admin panel edits. Balances are clamped at the
// API boundary: negative values are rejected, never stored.
func (s *service) AdminUpdate(userID uint, input AdminUpdateInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	for _, v := range []*float64{
		input.Balance, input.CommissionBalance,
		input.DepositCommission, input.DepositCommissionBalance,
		input.ReferCommission, input.ReferCommissionBalance,
		input.GameLossCommission, input.GameLossCommissionBalance,
	} {
		if v != nil && *v < 0 {
			return nil, ErrNegativeBalance
		}
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Status != nil {
		user.Status = *input.Status
	}
	if input.Role != nil {
		switch *input.Role {
		case models.RoleUser, models.RoleAffiliate, models.RoleAdmin:
			user.Role = *input.Role
		default:
			return nil, errors.New("unknown role")
		}
	}
	if input.Balance != nil {
		user.Balance = *input.Balance
	}
	if input.CommissionBalance != nil {
		user.CommissionBalance = *input.CommissionBalance
	}
	if input.DepositCommission != nil {
		user.DepositCommission = *input.DepositCommission
	}
	if input.DepositCommissionBalance != nil {
		user.DepositCommissionBalance = *input.DepositCommissionBalance
	}
	if input.ReferCommission != nil {
		user.ReferCommission = *input.ReferCommission
	}
	if input.ReferCommissionBalance != nil {
		user.ReferCommissionBalance = *input.ReferCommissionBalance
	}
	if input.GameLossCommission != nil {
		user.GameLossCommission = *input.GameLossCommission
	}
	if input.GameLossCommissionBalance != nil {
		user.GameLossCommissionBalance = *input.GameLossCommissionBalance
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Balance(userID uint) (models.BalanceSnapshot, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return models.BalanceSnapshot{}, err
	}
	return user.Snapshot(), nil
}
