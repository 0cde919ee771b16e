package currency

import (
	"context"
	"errors"
	"fmt"

	"currencyconv/internal/adapters"
	"currencyconv/internal/domain"
	"currencyconv/internal/money"
	"currencyconv/internal/names"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Service is the currency registry: it normalizes names, guards the rate and
// name invariants and keeps the lookup cache coherent with the store.
type Service struct {
	store             adapters.CurrencyStore
	cache             adapters.CurrencyCache
	log               logrus.FieldLogger
	emptyListNotFound bool
}

func (s *Service) Register(ctx context.Context, name string, rate decimal.Decimal) (domain.Currency, error) {
	if names.IsBlank(name) {
		return domain.Currency{}, domain.ErrBlankName
	}
	if err := checkRate(&rate); err != nil {
		return domain.Currency{}, err
	}
	normalized := names.Normalize(name)
	gen := s.cache.Generation()

	if _, err := s.store.FindByName(ctx, normalized); err == nil {
		s.log.WithField("currency", normalized).Warn("attempt to register a duplicate currency")
		return domain.Currency{}, fmt.Errorf("%w: [%s]", domain.ErrCurrencyExists, normalized)
	} else if !errors.Is(err, domain.ErrCurrencyNotFound) {
		return domain.Currency{}, err
	}

	// a concurrent writer can still win between the lookup and the insert,
	// the store reports that as ErrCurrencyExists as well
	created, err := s.store.Insert(ctx, normalized, rate)
	if err != nil {
		if errors.Is(err, domain.ErrCurrencyExists) {
			s.log.WithField("currency", normalized).Warn("attempt to register a duplicate currency")
		}
		return domain.Currency{}, err
	}
	s.cache.Set(gen, created)

	s.log.WithFields(logrus.Fields{"id": created.ID, "currency": created.Name, "rate": created.Rate.String()}).
		Info("currency registered")
	return created, nil
}

// List returns every currency in insertion order. With emptyListNotFound an
// empty registry is reported as ErrNoCurrencies.
func (s *Service) List(ctx context.Context) ([]domain.Currency, error) {
	all, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 && s.emptyListNotFound {
		s.log.Warn("no currencies registered")
		return nil, domain.ErrNoCurrencies
	}
	s.log.Debugf("%d currencies found", len(all))
	return all, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Currency, error) {
	c, err := s.store.FindByID(ctx, id)
	if err != nil && errors.Is(err, domain.ErrCurrencyNotFound) {
		s.log.WithField("id", id).Warn("currency not found")
	}
	return c, err
}

// GetByName looks a currency up by its normalized name. A blank name matches
// nothing, since no currency can be registered under one.
func (s *Service) GetByName(ctx context.Context, name string) (domain.Currency, error) {
	if names.IsBlank(name) {
		return domain.Currency{}, domain.ErrCurrencyNotFound
	}
	normalized := names.Normalize(name)
	c, err := s.store.FindByName(ctx, normalized)
	if err != nil && errors.Is(err, domain.ErrCurrencyNotFound) {
		s.log.WithField("currency", normalized).Warn("currency not found")
	}
	return c, err
}

// Replace overwrites both fields of the currency registered under name.
func (s *Service) Replace(ctx context.Context, name string, newName string, newRate decimal.Decimal) (domain.Currency, error) {
	patch, err := fullPatch(newName, newRate)
	if err != nil {
		return domain.Currency{}, err
	}
	current, err := s.GetByName(ctx, name)
	if err != nil {
		return domain.Currency{}, err
	}
	return s.apply(ctx, current, patch)
}

func (s *Service) ReplaceByID(ctx context.Context, id int64, newName string, newRate decimal.Decimal) (domain.Currency, error) {
	patch, err := fullPatch(newName, newRate)
	if err != nil {
		return domain.Currency{}, err
	}
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Currency{}, err
	}
	return s.apply(ctx, current, patch)
}

// Patch changes only the fields present in patch. A blank name counts as absent.
func (s *Service) Patch(ctx context.Context, name string, patch domain.CurrencyPatch) (domain.Currency, error) {
	patch, err := partialPatch(patch)
	if err != nil {
		return domain.Currency{}, err
	}
	current, err := s.GetByName(ctx, name)
	if err != nil {
		return domain.Currency{}, err
	}
	return s.apply(ctx, current, patch)
}

func (s *Service) PatchByID(ctx context.Context, id int64, patch domain.CurrencyPatch) (domain.Currency, error) {
	patch, err := partialPatch(patch)
	if err != nil {
		return domain.Currency{}, err
	}
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Currency{}, err
	}
	return s.apply(ctx, current, patch)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err = s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(current.Name)

	s.log.WithFields(logrus.Fields{"id": id, "currency": current.Name}).Info("currency deleted")
	return nil
}

// apply writes an already validated and normalized patch. The duplicate check
// skips the record being updated, so renaming a currency to its own name works.
func (s *Service) apply(ctx context.Context, current domain.Currency, patch domain.CurrencyPatch) (domain.Currency, error) {
	if patch.IsEmpty() {
		return current, nil
	}

	if patch.Name != nil && *patch.Name != current.Name {
		other, err := s.store.FindByName(ctx, *patch.Name)
		switch {
		case err == nil && other.ID != current.ID:
			s.log.WithFields(logrus.Fields{"id": current.ID, "currency": *patch.Name}).
				Warn("attempt to rename currency to an existing name")
			return domain.Currency{}, fmt.Errorf("%w: [%s]", domain.ErrCurrencyExists, *patch.Name)
		case err != nil && !errors.Is(err, domain.ErrCurrencyNotFound):
			return domain.Currency{}, err
		}
	}

	updated, err := s.store.Update(ctx, current.ID, patch)
	if err != nil {
		return domain.Currency{}, err
	}
	s.cache.Invalidate(current.Name, updated.Name)

	s.log.WithFields(logrus.Fields{
		"id":       updated.ID,
		"currency": updated.Name,
		"rate":     updated.Rate.String(),
		"previous": current.Name,
	}).Info("currency updated")
	return updated, nil
}

func fullPatch(name string, rate decimal.Decimal) (domain.CurrencyPatch, error) {
	if names.IsBlank(name) {
		return domain.CurrencyPatch{}, domain.ErrBlankName
	}
	if err := checkRate(&rate); err != nil {
		return domain.CurrencyPatch{}, err
	}
	normalized := names.Normalize(name)
	return domain.CurrencyPatch{Name: &normalized, Rate: &rate}, nil
}

func partialPatch(in domain.CurrencyPatch) (domain.CurrencyPatch, error) {
	var out domain.CurrencyPatch
	if in.Name != nil && !names.IsBlank(*in.Name) {
		normalized := names.Normalize(*in.Name)
		out.Name = &normalized
	}
	if in.Rate != nil {
		if err := checkRate(in.Rate); err != nil {
			return domain.CurrencyPatch{}, err
		}
		rate := *in.Rate
		out.Rate = &rate
	}
	return out, nil
}

func checkRate(rate *decimal.Decimal) error {
	if !money.IsPositive(rate) {
		return domain.ErrInvalidRate
	}
	if !money.InRange(rate) {
		return domain.ErrRateOutOfRange
	}
	return nil
}

func NewService(store adapters.CurrencyStore, cache adapters.CurrencyCache, logger logrus.FieldLogger, emptyListNotFound bool) *Service {
	return &Service{store: store, cache: cache, log: logger, emptyListNotFound: emptyListNotFound}
}
