package currency

import (
	"context"
	"fmt"

	"currencyconv/internal/adapters"
	"currencyconv/internal/domain"
	"currencyconv/internal/money"
	"currencyconv/internal/names"

	"github.com/sirupsen/logrus"
)

// Converter values an amount at the rate of a registered destination currency:
// converted = amount * destination rate. The origin label is only normalized
// for display, it is never looked up.
type Converter struct {
	store adapters.CurrencyStore
	cache adapters.CurrencyCache
	log   logrus.FieldLogger
}

func (c *Converter) Convert(ctx context.Context, req domain.ConversionRequest) (domain.ConversionResult, error) {
	if !money.IsPositive(&req.Amount) {
		return domain.ConversionResult{}, domain.ErrInvalidAmount
	}
	if !money.InRange(&req.Amount) {
		return domain.ConversionResult{}, domain.ErrAmountOutOfRange
	}

	dest := names.Normalize(req.DestLabel)
	log := c.log.WithFields(logrus.Fields{"amount": req.Amount.String(), "origin": req.OriginLabel, "destination": dest})
	log.Info("conversion started")

	target, err := c.lookup(ctx, dest)
	if err != nil {
		log.WithError(err).Warn("destination currency lookup failed")
		return domain.ConversionResult{}, err
	}

	converted, err := money.Multiply(&req.Amount, &target.Rate)
	if err != nil {
		return domain.ConversionResult{}, fmt.Errorf("failed to convert to %q: %w", dest, err)
	}
	log.Debugf("%s * %s = %s", req.Amount, target.Rate, converted)

	res := domain.ConversionResult{
		OriginalAmount:  *money.RoundHalfUp(&req.Amount, money.ConversionScale),
		ConvertedAmount: *money.RoundHalfUp(&converted, money.ConversionScale),
		OriginLabel:     names.Normalize(req.OriginLabel),
		DestLabel:       dest,
		RateApplied:     target.Rate,
	}

	log.WithFields(logrus.Fields{
		"original":  money.Format(&res.OriginalAmount, money.ConversionScale),
		"converted": money.Format(&res.ConvertedAmount, money.ConversionScale),
		"rate":      res.RateApplied.String(),
	}).Info("conversion succeeded")
	return res, nil
}

// lookup reads the destination from the cache, falling back to the store.
func (c *Converter) lookup(ctx context.Context, name string) (domain.Currency, error) {
	if cur, ok := c.cache.Get(name); ok {
		return cur, nil
	}
	gen := c.cache.Generation()
	cur, err := c.store.FindByName(ctx, name)
	if err != nil {
		return domain.Currency{}, err
	}
	c.cache.Set(gen, cur)
	return cur, nil
}

func NewConverter(store adapters.CurrencyStore, cache adapters.CurrencyCache, logger logrus.FieldLogger) *Converter {
	return &Converter{store: store, cache: cache, log: logger}
}
