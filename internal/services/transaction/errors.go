package transaction

import "errors"

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidTransition   = errors.New("transaction already finalized")
	ErrMethodUnavailable   = errors.New("payment method unavailable")
	ErrUnknownChannel      = errors.New("unknown payment channel")
	ErrPromotionNotActive  = errors.New("promotion not active for this method")
	ErrDuplicateRequest    = errors.New("duplicate request")
)
