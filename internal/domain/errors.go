package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCurrencyNotFound = errors.New("currency not found")
	ErrNoCurrencies     = errors.New("no currencies registered")
	ErrCurrencyExists   = errors.New("currency already exists")
)

// ErrValidation is the parent of every input validation error.
var ErrValidation = errors.New("validation error")

var (
	ErrBlankName     = fmt.Errorf("%w: currency name must not be blank", ErrValidation)
	ErrInvalidRate   = fmt.Errorf("%w: rate must be greater than 0", ErrValidation)
	ErrInvalidAmount = fmt.Errorf("%w: amount must be greater than 0", ErrValidation)

	ErrRateOutOfRange   = fmt.Errorf("%w: rate is out of range", ErrValidation)
	ErrAmountOutOfRange = fmt.Errorf("%w: amount is out of range", ErrValidation)
)

// IsNotFound reports whether err is one of the not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCurrencyNotFound) || errors.Is(err, ErrNoCurrencies)
}
