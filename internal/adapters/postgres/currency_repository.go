package postgres

import (
	"context"
	"errors"
	"fmt"

	"currencyconv/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const uniqueViolation = "23505"

// DB is the part of *pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type CurrencyRepository struct {
	db DB
}

const currencyColumns = `id, name, rate::text, created_at, updated_at`

func (r *CurrencyRepository) Insert(ctx context.Context, name string, rate decimal.Decimal) (domain.Currency, error) {
	const q = `
		insert into currencies (name, rate)
		values ($1, $2::numeric)
		returning ` + currencyColumns + `;
	`

	c, err := scanCurrency(r.db.QueryRow(ctx, q, name, rate.String()))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Currency{}, fmt.Errorf("%w: [%s]", domain.ErrCurrencyExists, name)
		}
		return domain.Currency{}, fmt.Errorf("failed to insert currency %q: %w", name, err)
	}
	return c, nil
}

func (r *CurrencyRepository) FindByName(ctx context.Context, name string) (domain.Currency, error) {
	const q = `select ` + currencyColumns + ` from currencies where name = $1;`

	c, err := scanCurrency(r.db.QueryRow(ctx, q, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Currency{}, fmt.Errorf("%w: %s", domain.ErrCurrencyNotFound, name)
		}
		return domain.Currency{}, fmt.Errorf("failed to select currency %q: %w", name, err)
	}
	return c, nil
}

func (r *CurrencyRepository) FindByID(ctx context.Context, id int64) (domain.Currency, error) {
	const q = `select ` + currencyColumns + ` from currencies where id = $1;`

	c, err := scanCurrency(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Currency{}, fmt.Errorf("%w: id %d", domain.ErrCurrencyNotFound, id)
		}
		return domain.Currency{}, fmt.Errorf("failed to select currency %d: %w", id, err)
	}
	return c, nil
}

func (r *CurrencyRepository) ListAll(ctx context.Context) ([]domain.Currency, error) {
	const q = `select ` + currencyColumns + ` from currencies order by id;`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	currencies := make([]domain.Currency, 0, 16)
	for rows.Next() {
		c, scanErr := scanCurrency(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", scanErr)
		}
		currencies = append(currencies, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currencies: %w", err)
	}
	return currencies, nil
}

// Update applies patch to the currency with the given id inside a transaction.
// The row is locked first so the name/rate merge is not lost to a concurrent update;
// the unique index on name decides races between renames.
func (r *CurrencyRepository) Update(ctx context.Context, id int64, patch domain.CurrencyPatch) (domain.Currency, error) {
	const selectQ = `select ` + currencyColumns + ` from currencies where id = $1 for update;`
	const updateQ = `
		update currencies
		set name = $2, rate = $3::numeric, updated_at = now()
		where id = $1
		returning ` + currencyColumns + `;
	`

	var updated domain.Currency
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		current, err := scanCurrency(tx.QueryRow(ctx, selectQ, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: id %d", domain.ErrCurrencyNotFound, id)
			}
			return fmt.Errorf("failed to lock currency %d: %w", id, err)
		}

		name, rate := current.Name, current.Rate
		if patch.Name != nil {
			name = *patch.Name
		}
		if patch.Rate != nil {
			rate = *patch.Rate
		}

		updated, err = scanCurrency(tx.QueryRow(ctx, updateQ, id, name, rate.String()))
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: [%s]", domain.ErrCurrencyExists, name)
			}
			return fmt.Errorf("failed to update currency %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return domain.Currency{}, err
	}
	return updated, nil
}

func (r *CurrencyRepository) Delete(ctx context.Context, id int64) error {
	const q = `delete from currencies where id = $1;`

	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("failed to delete currency %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", domain.ErrCurrencyNotFound, id)
	}
	return nil
}

func scanCurrency(row pgx.Row) (domain.Currency, error) {
	var (
		c       domain.Currency
		rawRate string
	)
	if err := row.Scan(&c.ID, &c.Name, &rawRate, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.Currency{}, err
	}
	rate, err := decimal.NewFromString(rawRate)
	if err != nil {
		return domain.Currency{}, fmt.Errorf("invalid stored rate %q: %w", rawRate, err)
	}
	c.Rate = rate
	return c, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func NewCurrencyRepository(db DB) *CurrencyRepository {
	return &CurrencyRepository{db: db}
}
