package currency

import (
	"context"

	"currencyconv/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
)

// --- Testify mocks ---

type MockCurrencyStore struct{ mock.Mock }

func (m *MockCurrencyStore) Insert(ctx context.Context, name string, rate decimal.Decimal) (domain.Currency, error) {
	args := m.Called(ctx, name, rate)
	c, _ := args.Get(0).(domain.Currency)
	return c, args.Error(1)
}

func (m *MockCurrencyStore) FindByName(ctx context.Context, name string) (domain.Currency, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(domain.Currency)
	return c, args.Error(1)
}

func (m *MockCurrencyStore) FindByID(ctx context.Context, id int64) (domain.Currency, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(domain.Currency)
	return c, args.Error(1)
}

func (m *MockCurrencyStore) ListAll(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	all, _ := args.Get(0).([]domain.Currency)
	return all, args.Error(1)
}

func (m *MockCurrencyStore) Update(ctx context.Context, id int64, patch domain.CurrencyPatch) (domain.Currency, error) {
	args := m.Called(ctx, id, patch)
	c, _ := args.Get(0).(domain.Currency)
	return c, args.Error(1)
}

func (m *MockCurrencyStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCurrencyCache struct {
	mock.Mock
	gen uint64
}

func (m *MockCurrencyCache) Get(name string) (domain.Currency, bool) {
	args := m.Called(name)
	c, _ := args.Get(0).(domain.Currency)
	return c, args.Bool(1)
}

// Generation is not recorded, tests pin it through the gen field.
func (m *MockCurrencyCache) Generation() uint64 {
	return m.gen
}

func (m *MockCurrencyCache) Set(gen uint64, c domain.Currency) bool {
	args := m.Called(gen, c)
	return args.Bool(0)
}

func (m *MockCurrencyCache) Reset(gen uint64, all []domain.Currency) bool {
	args := m.Called(gen, all)
	return args.Bool(0)
}

func (m *MockCurrencyCache) Invalidate(names ...string) {
	m.Called(names)
}

func newTestLogger() (*logrus.Logger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
