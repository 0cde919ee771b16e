package cache

import (
	"testing"
	"time"

	"currencyconv/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func euro() domain.Currency {
	return domain.Currency{ID: 1, Name: "EURO", Rate: decimal.RequireFromString("3.96")}
}

func TestCurrencyCache_SetAndGet(t *testing.T) {
	c, err := NewCurrencyCache(128, 0)
	require.NoError(t, err)
	defer c.Close()

	require.True(t, c.Set(c.Generation(), euro()))
	c.cache.Wait()

	got, ok := c.Get("EURO")
	require.True(t, ok)
	require.Equal(t, int64(1), got.ID)
	require.True(t, got.Rate.Equal(decimal.RequireFromString("3.96")))
}

func TestCurrencyCache_GetMissWhenEmpty(t *testing.T) {
	c, err := NewCurrencyCache(64, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	got, ok := c.Get("EURO")
	require.False(t, ok)
	require.Equal(t, domain.Currency{}, got)
}

func TestCurrencyCache_InvalidateEvictsOnlyGivenNames(t *testing.T) {
	c, err := NewCurrencyCache(256, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	gen := c.Generation()
	c.Set(gen, euro())
	c.Set(gen, domain.Currency{ID: 2, Name: "DOLAR", Rate: decimal.RequireFromString("3.75")})
	c.Set(gen, domain.Currency{ID: 3, Name: "YEN", Rate: decimal.RequireFromString("0.025")})
	c.cache.Wait()

	c.Invalidate("EURO", "DOLAR")

	_, ok := c.Get("EURO")
	require.False(t, ok)
	_, ok = c.Get("DOLAR")
	require.False(t, ok)

	got, ok := c.Get("YEN")
	require.True(t, ok)
	require.Equal(t, int64(3), got.ID)
}

func TestCurrencyCache_StaleFillIsDropped(t *testing.T) {
	c, err := NewCurrencyCache(16, 0)
	require.NoError(t, err)
	defer c.Close()

	// a reader captured the generation, then an update invalidated the name
	gen := c.Generation()
	c.Invalidate("EURO")

	require.False(t, c.Set(gen, euro()))
	require.False(t, c.Reset(gen, []domain.Currency{euro()}))
	c.cache.Wait()

	_, ok := c.Get("EURO")
	require.False(t, ok)
	require.Equal(t, gen+1, c.Generation())
}

func TestCurrencyCache_ResetReplacesContent(t *testing.T) {
	c, err := NewCurrencyCache(16, 0)
	require.NoError(t, err)
	defer c.Close()

	c.Set(c.Generation(), euro())
	c.cache.Wait()

	yen := domain.Currency{ID: 3, Name: "YEN", Rate: decimal.RequireFromString("0.025")}
	require.True(t, c.Reset(c.Generation(), []domain.Currency{yen}))
	c.cache.Wait()

	_, ok := c.Get("EURO")
	require.False(t, ok)
	got, ok := c.Get("YEN")
	require.True(t, ok)
	require.Equal(t, yen.ID, got.ID)
}

func TestNewCurrencyCache_RejectsNonPositiveSize(t *testing.T) {
	_, err := NewCurrencyCache(0, 0)
	require.Error(t, err)
}
