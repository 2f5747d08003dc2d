package repositories

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrPromotionNotFound     = errors.New("promotion not found")
	ErrGameNotFound          = errors.New("game not found")
	ErrClaimNotFound         = errors.New("auto-payment claim not found")
	ErrDuplicateKey          = errors.New("duplicate key")
)
