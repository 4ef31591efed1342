package sqlite

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dferreira/folio-backend/internal/domain"
)

// reportRepository implements domain.ReportRepository
type reportRepository struct {
	db  *DB
	log zerolog.Logger
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *DB, log zerolog.Logger) domain.ReportRepository {
	return &reportRepository{db: db, log: log.With().Str("repo", "report").Logger()}
}

// Ledger returns every transaction whose asset market, asset, location and
// currency all resolve. Inner joins drop rows with dangling references, so
// only fully displayable transactions come back.
func (r *reportRepository) Ledger(ctx context.Context) ([]domain.LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.date, a.symbol, a.name, am.name, t.price, t.quantity, l.name, cu.code
		 FROM transactions t
		 JOIN asset_markets am ON t.asset_market_id = am.id
		 JOIN assets a ON am.asset_id = a.id
		 JOIN locations l ON t.location_id = l.id
		 JOIN currencies cu ON am.currency_id = cu.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		var price, quantity float64
		if err := rows.Scan(&e.Date, &e.Symbol, &e.AssetName, &e.AssetMarketName,
			&price, &quantity, &e.LocationName, &e.CurrencyCode); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		e.Price = decimal.NewFromFloat(price)
		e.Quantity = decimal.NewFromFloat(quantity)
		e.Total = e.Price.Mul(e.Quantity)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entries: %w", err)
	}

	return entries, nil
}

// AssetOverview sums signed transaction quantities per asset per location.
// Buys are positive, sells negative.
func (r *reportRepository) AssetOverview(ctx context.Context) ([]domain.AssetPosition, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT a.name, l.name, SUM(t.quantity)
		 FROM transactions t
		 JOIN asset_markets am ON t.asset_market_id = am.id
		 JOIN assets a ON am.asset_id = a.id
		 JOIN locations l ON t.location_id = l.id
		 GROUP BY a.name, l.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset overview: %w", err)
	}
	defer rows.Close()

	var positions []domain.AssetPosition
	for rows.Next() {
		var p domain.AssetPosition
		var quantity float64
		if err := rows.Scan(&p.AssetName, &p.LocationName, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan asset position: %w", err)
		}
		p.Quantity = decimal.NewFromFloat(quantity)
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset positions: %w", err)
	}

	return positions, nil
}
