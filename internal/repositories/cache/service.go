package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tkbet/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// SetNX sets a key only if it does not exist. Used as the fast-path guard
// for idempotency keys; the database unique index remains authoritative.
func (s *CacheService) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.SetNX(ctx, key, data, ttl).Result()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// User caching
func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}
	return s.Set(ctx, s.GenerateKey("user", "id", user.ID), user)
}

func (s *CacheService) GetUser(ctx context.Context, key string) (*models.User, error) {
	var user models.User
	found, err := s.Get(ctx, key, &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("user not found in cache")
	}
	return &user, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, userID uint) error {
	return s.Delete(ctx,
		s.GenerateKey("user", "id", userID),
		s.GenerateKey("user", "balance", userID),
	)
}

// Payment method registry caching
func (s *CacheService) CachePaymentMethods(ctx context.Context, kind string, methods []models.PaymentMethod) error {
	return s.SetWithTTL(ctx, s.GenerateKey("payment-methods", "kind", kind), methods, 5*time.Minute)
}

func (s *CacheService) GetPaymentMethods(ctx context.Context, kind string) ([]models.PaymentMethod, bool) {
	var methods []models.PaymentMethod
	found, err := s.Get(ctx, s.GenerateKey("payment-methods", "kind", kind), &methods)
	if err != nil || !found {
		return nil, false
	}
	return methods, true
}

func (s *CacheService) InvalidatePaymentMethods(ctx context.Context) error {
	return s.Delete(ctx,
		s.GenerateKey("payment-methods", "kind", models.MethodKindDeposit),
		s.GenerateKey("payment-methods", "kind", models.MethodKindWithdraw),
		s.GenerateKey("payment-methods", "kind", ""),
	)
}

// Deposit session handoff. The opaque reference stands in for the full
// context so the popup URL never carries credentials.
func (s *CacheService) SaveDepositSession(ctx context.Context, ref string, session *models.DepositSession, ttl time.Duration) error {
	return s.SetWithTTL(ctx, s.GenerateKey("deposit-session", "ref", ref), session, ttl)
}

func (s *CacheService) GetDepositSession(ctx context.Context, ref string) (*models.DepositSession, error) {
	var session models.DepositSession
	found, err := s.Get(ctx, s.GenerateKey("deposit-session", "ref", ref), &session)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("deposit session not found or expired")
	}
	return &session, nil
}

// FlushAll flushes all keys from the cache
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
