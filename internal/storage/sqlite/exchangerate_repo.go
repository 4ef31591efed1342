package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dferreira/folio-backend/internal/domain"
)

// exchangeRateRepository implements domain.ExchangeRateRepository
type exchangeRateRepository struct {
	db  *DB
	log zerolog.Logger
}

// NewExchangeRateRepository creates a new exchange rate repository
func NewExchangeRateRepository(db *DB, log zerolog.Logger) domain.ExchangeRateRepository {
	return &exchangeRateRepository{db: db, log: log.With().Str("repo", "exchange_rate").Logger()}
}

func (r *exchangeRateRepository) Add(ctx context.Context, rate domain.ExchangeRate) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO exchange_rates (date, currency_from_id, currency_to_id, rate) VALUES (?, ?, ?, ?)`,
		rate.Date, rate.CurrencyFromID, rate.CurrencyToID, rate.Rate.InexactFloat64())
	if err != nil {
		return constraintErr(err, "failed to add exchange rate")
	}
	return nil
}

// Latest returns the most recent rate snapshot between two currencies.
// ISO dates sort lexicographically, so ORDER BY date is chronological.
func (r *exchangeRateRepository) Latest(ctx context.Context, fromID, toID int64) (*domain.ExchangeRate, error) {
	var rate domain.ExchangeRate
	var value float64
	err := r.db.QueryRowContext(ctx,
		`SELECT date, currency_from_id, currency_to_id, rate
		 FROM exchange_rates
		 WHERE currency_from_id = ? AND currency_to_id = ?
		 ORDER BY date DESC
		 LIMIT 1`, fromID, toID).
		Scan(&rate.Date, &rate.CurrencyFromID, &rate.CurrencyToID, &value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest exchange rate: %w", err)
	}
	rate.Rate = decimal.NewFromFloat(value)

	return &rate, nil
}
