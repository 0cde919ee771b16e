package adapters

import (
	"context"

	"currencyconv/internal/domain"

	"github.com/shopspring/decimal"
)

// CurrencyStore persists currencies. Names are stored exactly as given, callers
// normalize them first. Uniqueness of names is enforced by the store itself.
type CurrencyStore interface {
	Insert(ctx context.Context, name string, rate decimal.Decimal) (domain.Currency, error)
	FindByName(ctx context.Context, name string) (domain.Currency, error)
	FindByID(ctx context.Context, id int64) (domain.Currency, error)
	ListAll(ctx context.Context) ([]domain.Currency, error)
	Update(ctx context.Context, id int64, patch domain.CurrencyPatch) (domain.Currency, error)
	Delete(ctx context.Context, id int64) error
}

// CurrencyCache is a best-effort name -> currency lookup cache.
//
// Fills are guarded by a generation: callers read Generation before reading
// the store and pass it to Set or Reset, which drop the write if an
// Invalidate happened in between. A slow reader therefore never puts back a
// value that a concurrent update already replaced.
type CurrencyCache interface {
	Get(name string) (domain.Currency, bool)
	Generation() uint64
	Set(gen uint64, c domain.Currency) bool
	Reset(gen uint64, all []domain.Currency) bool
	Invalidate(names ...string)
}
