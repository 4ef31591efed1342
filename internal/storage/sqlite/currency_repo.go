package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dferreira/folio-backend/internal/domain"
)

// currencyRepository implements domain.CurrencyRepository
type currencyRepository struct {
	db  *DB
	log zerolog.Logger
}

// NewCurrencyRepository creates a new currency repository
func NewCurrencyRepository(db *DB, log zerolog.Logger) domain.CurrencyRepository {
	return &currencyRepository{db: db, log: log.With().Str("repo", "currency").Logger()}
}

func (r *currencyRepository) List(ctx context.Context) ([]domain.Currency, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, code, name FROM currencies`)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	var currencies []domain.Currency
	for rows.Next() {
		var c domain.Currency
		if err := rows.Scan(&c.ID, &c.Code, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		currencies = append(currencies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currencies: %w", err)
	}

	return currencies, nil
}

// Create fails with domain.ErrConstraint on a duplicate code.
func (r *currencyRepository) Create(ctx context.Context, code, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO currencies (code, name) VALUES (?, ?)`, code, name)
	if err != nil {
		return 0, constraintErr(err, fmt.Sprintf("failed to create currency %q", code))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read currency id: %w", err)
	}

	r.log.Debug().Int64("id", id).Str("code", code).Msg("currency created")
	return id, nil
}

func (r *currencyRepository) GetByID(ctx context.Context, id int64) (*domain.Currency, error) {
	var c domain.Currency
	err := r.db.QueryRowContext(ctx,
		`SELECT id, code, name FROM currencies WHERE id = ?`, id).
		Scan(&c.ID, &c.Code, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get currency by id: %w", err)
	}

	return &c, nil
}

func (r *currencyRepository) Code(ctx context.Context, id int64) (string, error) {
	var code string
	err := r.db.QueryRowContext(ctx,
		`SELECT code FROM currencies WHERE id = ?`, id).Scan(&code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get currency code: %w", err)
	}

	return code, nil
}
