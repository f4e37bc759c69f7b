package money

import "errors"

var (
	ErrCurrencyMismatch        = errors.New("money: currency mismatch")
	ErrInvalidInstallmentCount = errors.New("money: installment count must be positive")
)
