package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is a registered currency. Name is always stored normalized.
type Currency struct {
	ID        int64
	Name      string
	Rate      decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CurrencyPatch carries the fields of a partial update, nil fields stay unchanged.
type CurrencyPatch struct {
	Name *string
	Rate *decimal.Decimal
}

// IsEmpty reports whether the patch changes nothing.
func (p CurrencyPatch) IsEmpty() bool {
	return p.Name == nil && p.Rate == nil
}
