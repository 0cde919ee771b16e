// Package badgerdb stores currencies in an embedded BadgerDB.
//
// Layout:
//
//	currency:id:<8-byte big-endian id>  -> JSON record
//	currency:name:<normalized name>     -> 8-byte big-endian id
//
// Both keys are written in the same read-write transaction, so the name index
// never points at a missing record.
package badgerdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"currencyconv/internal/domain"

	"github.com/dgraph-io/badger/v3"
	"github.com/shopspring/decimal"
)

const (
	idPrefix   = "currency:id:"
	namePrefix = "currency:name:"
	seqKey     = "currency:seq"

	seqBandwidth = 100
	// optimistic transactions that lost a race are retried this many times
	maxConflictRetries = 5
)

type record struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type CurrencyRepository struct {
	db  *badger.DB
	seq *badger.Sequence
	now func() time.Time
}

// Open opens (or creates) a badger database in dir. An empty dir opens an
// in-memory database.
func Open(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", dir, err)
	}
	return db, nil
}

func NewCurrencyRepository(db *badger.DB) (*CurrencyRepository, error) {
	seq, err := db.GetSequence([]byte(seqKey), seqBandwidth)
	if err != nil {
		return nil, fmt.Errorf("failed to lease currency id sequence: %w", err)
	}
	return &CurrencyRepository{db: db, seq: seq, now: time.Now}, nil
}

// Close releases the unused part of the id lease. It does not close the db.
func (r *CurrencyRepository) Close() error {
	return r.seq.Release()
}

func (r *CurrencyRepository) Insert(ctx context.Context, name string, rate decimal.Decimal) (domain.Currency, error) {
	next, err := r.seq.Next()
	if err != nil {
		return domain.Currency{}, fmt.Errorf("failed to allocate currency id: %w", err)
	}
	// Sequence starts at 0, ids start at 1
	now := r.now().UTC()
	rec := record{ID: int64(next) + 1, Name: name, Rate: rate, CreatedAt: now, UpdatedAt: now}

	err = r.update(ctx, func(txn *badger.Txn) error {
		if _, getErr := txn.Get(nameKey(name)); getErr == nil {
			return fmt.Errorf("%w: [%s]", domain.ErrCurrencyExists, name)
		} else if !errors.Is(getErr, badger.ErrKeyNotFound) {
			return getErr
		}
		return putRecord(txn, rec)
	})
	if err != nil {
		if errors.Is(err, domain.ErrCurrencyExists) {
			return domain.Currency{}, err
		}
		return domain.Currency{}, fmt.Errorf("failed to insert currency %q: %w", name, err)
	}
	return rec.toDomain(), nil
}

func (r *CurrencyRepository) FindByName(ctx context.Context, name string) (domain.Currency, error) {
	var rec record
	err := r.view(ctx, func(txn *badger.Txn) error {
		id, err := getID(txn, name)
		if err != nil {
			return err
		}
		rec, err = getRecord(txn, id)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.Currency{}, fmt.Errorf("%w: %s", domain.ErrCurrencyNotFound, name)
		}
		return domain.Currency{}, fmt.Errorf("failed to read currency %q: %w", name, err)
	}
	return rec.toDomain(), nil
}

func (r *CurrencyRepository) FindByID(ctx context.Context, id int64) (domain.Currency, error) {
	var rec record
	err := r.view(ctx, func(txn *badger.Txn) error {
		var err error
		rec, err = getRecord(txn, id)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.Currency{}, fmt.Errorf("%w: id %d", domain.ErrCurrencyNotFound, id)
		}
		return domain.Currency{}, fmt.Errorf("failed to read currency %d: %w", id, err)
	}
	return rec.toDomain(), nil
}

// ListAll returns currencies in id order, which is insertion order.
func (r *CurrencyRepository) ListAll(ctx context.Context) ([]domain.Currency, error) {
	currencies := make([]domain.Currency, 0, 16)
	err := r.view(ctx, func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(idPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec record
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			currencies = append(currencies, rec.toDomain())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}

func (r *CurrencyRepository) Update(ctx context.Context, id int64, patch domain.CurrencyPatch) (domain.Currency, error) {
	var updated record
	err := r.update(ctx, func(txn *badger.Txn) error {
		current, err := getRecord(txn, id)
		if err != nil {
			return err
		}
		updated = current

		if patch.Name != nil && *patch.Name != current.Name {
			owner, getErr := getID(txn, *patch.Name)
			switch {
			case getErr == nil && owner != id:
				return fmt.Errorf("%w: [%s]", domain.ErrCurrencyExists, *patch.Name)
			case getErr != nil && !errors.Is(getErr, badger.ErrKeyNotFound):
				return getErr
			}
			if err = txn.Delete(nameKey(current.Name)); err != nil {
				return err
			}
			updated.Name = *patch.Name
		}
		if patch.Rate != nil {
			updated.Rate = *patch.Rate
		}
		updated.UpdatedAt = r.now().UTC()
		return putRecord(txn, updated)
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCurrencyExists):
			return domain.Currency{}, err
		case errors.Is(err, badger.ErrKeyNotFound):
			return domain.Currency{}, fmt.Errorf("%w: id %d", domain.ErrCurrencyNotFound, id)
		}
		return domain.Currency{}, fmt.Errorf("failed to update currency %d: %w", id, err)
	}
	return updated.toDomain(), nil
}

func (r *CurrencyRepository) Delete(ctx context.Context, id int64) error {
	err := r.update(ctx, func(txn *badger.Txn) error {
		current, err := getRecord(txn, id)
		if err != nil {
			return err
		}
		if err = txn.Delete(nameKey(current.Name)); err != nil {
			return err
		}
		return txn.Delete(idKey(id))
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: id %d", domain.ErrCurrencyNotFound, id)
		}
		return fmt.Errorf("failed to delete currency %d: %w", id, err)
	}
	return nil
}

// update runs fn in a read-write transaction. Badger aborts the later of two
// transactions touching the same keys with ErrConflict, the retry then sees the
// committed state, so a losing concurrent insert reports ErrCurrencyExists.
func (r *CurrencyRepository) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = r.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func (r *CurrencyRepository) view(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.View(fn)
}

func getID(txn *badger.Txn, name string) (int64, error) {
	item, err := txn.Get(nameKey(name))
	if err != nil {
		return 0, err
	}
	var id int64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("corrupt name index for %q", name)
		}
		id = int64(binary.BigEndian.Uint64(val))
		return nil
	})
	return id, err
}

func getRecord(txn *badger.Txn, id int64) (record, error) {
	var rec record
	item, err := txn.Get(idKey(id))
	if err != nil {
		return rec, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	})
	return rec, err
}

func putRecord(txn *badger.Txn, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal currency: %w", err)
	}
	if err = txn.Set(idKey(rec.ID), data); err != nil {
		return err
	}
	return txn.Set(nameKey(rec.Name), encodeID(rec.ID))
}

func idKey(id int64) []byte {
	return append([]byte(idPrefix), encodeID(id)...)
}

func nameKey(name string) []byte {
	return []byte(namePrefix + name)
}

func encodeID(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

func (rec record) toDomain() domain.Currency {
	return domain.Currency{
		ID:        rec.ID,
		Name:      rec.Name,
		Rate:      rec.Rate,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
