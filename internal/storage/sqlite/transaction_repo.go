package sqlite

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dferreira/folio-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository.
// The ledger is append-only: no update or delete methods exist.
type transactionRepository struct {
	db  *DB
	log zerolog.Logger
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB, log zerolog.Logger) domain.TransactionRepository {
	return &transactionRepository{db: db, log: log.With().Str("repo", "transaction").Logger()}
}

func (r *transactionRepository) List(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, asset_market_id, quantity, price, date, location_id FROM transactions`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var quantity, price float64
		if err := rows.Scan(&tx.ID, &tx.AssetMarketID, &quantity, &price, &tx.Date, &tx.LocationID); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Quantity = decimal.NewFromFloat(quantity)
		tx.Price = decimal.NewFromFloat(price)
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txs, nil
}

// Create persists the transaction. Duplicate entries are accepted: the
// ledger carries no uniqueness constraint.
func (r *transactionRepository) Create(ctx context.Context, tx domain.Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (asset_market_id, quantity, price, date, location_id)
		 VALUES (?, ?, ?, ?, ?)`,
		tx.AssetMarketID, tx.Quantity.InexactFloat64(), tx.Price.InexactFloat64(), tx.Date, tx.LocationID)
	if err != nil {
		return 0, constraintErr(err, "failed to create transaction")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read transaction id: %w", err)
	}

	r.log.Debug().
		Int64("id", id).
		Int64("asset_market_id", tx.AssetMarketID).
		Str("date", tx.Date).
		Msg("transaction recorded")
	return id, nil
}
