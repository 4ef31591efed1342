package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dferreira/folio-backend/internal/domain"
)

// assetMarketRepository implements domain.AssetMarketRepository
type assetMarketRepository struct {
	db  *DB
	log zerolog.Logger
}

// NewAssetMarketRepository creates a new asset market repository
func NewAssetMarketRepository(db *DB, log zerolog.Logger) domain.AssetMarketRepository {
	return &assetMarketRepository{db: db, log: log.With().Str("repo", "asset_market").Logger()}
}

const assetMarketColumns = `id, name, description, asset_id, market_id, location_id, currency_id, data_source_id`

func scanAssetMarket(scan func(...any) error) (*domain.AssetMarket, error) {
	var am domain.AssetMarket
	var desc sql.NullString
	var dataSourceID sql.NullInt64
	if err := scan(&am.ID, &am.Name, &desc, &am.AssetID, &am.MarketID,
		&am.LocationID, &am.CurrencyID, &dataSourceID); err != nil {
		return nil, err
	}
	am.Description = desc.String
	if dataSourceID.Valid {
		am.DataSourceID = &dataSourceID.Int64
	}
	return &am, nil
}

func (r *assetMarketRepository) ListByLocation(ctx context.Context, locationID int64) ([]domain.AssetMarket, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+assetMarketColumns+` FROM asset_markets WHERE location_id = ?`, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset markets: %w", err)
	}
	defer rows.Close()

	var markets []domain.AssetMarket
	for rows.Next() {
		am, err := scanAssetMarket(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset market: %w", err)
		}
		markets = append(markets, *am)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset markets: %w", err)
	}

	return markets, nil
}

func (r *assetMarketRepository) Create(ctx context.Context, am domain.AssetMarket) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO asset_markets (location_id, name, description, asset_id, market_id, currency_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		am.LocationID, am.Name, am.Description, am.AssetID, am.MarketID, am.CurrencyID)
	if err != nil {
		return 0, constraintErr(err, "failed to create asset market")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read asset market id: %w", err)
	}

	r.log.Debug().Int64("id", id).Str("name", am.Name).Msg("asset market created")
	return id, nil
}

func (r *assetMarketRepository) GetByID(ctx context.Context, id int64) (*domain.AssetMarket, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+assetMarketColumns+` FROM asset_markets WHERE id = ?`, id)
	am, err := scanAssetMarket(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get asset market by id: %w", err)
	}

	return am, nil
}

func (r *assetMarketRepository) CurrencyID(ctx context.Context, id int64) (*int64, error) {
	var currencyID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT currency_id FROM asset_markets WHERE id = ?`, id).Scan(&currencyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get asset market currency: %w", err)
	}

	return &currencyID, nil
}

func (r *assetMarketRepository) DataSource(ctx context.Context, id int64) (*domain.DataSource, error) {
	var ds domain.DataSource
	err := r.db.QueryRowContext(ctx,
		`SELECT ds.id, ds.source
		 FROM data_sources ds
		 JOIN asset_markets am ON am.data_source_id = ds.id
		 WHERE am.id = ?`, id).
		Scan(&ds.ID, &ds.Source)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get asset market data source: %w", err)
	}

	return &ds, nil
}

// AttachDataSource applies the mutual-exclusion rule: linking at the asset
// level clears the asset market's own pointer, linking at the asset-market
// level leaves the asset untouched. Both updates run in one transaction.
func (r *assetMarketRepository) AttachDataSource(ctx context.Context, assetID, assetMarketID, dataSourceID int64, target domain.AttachTarget) error {
	if !target.Valid() {
		return domain.ErrInvalidAttachTarget
	}

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	switch target {
	case domain.AttachToAsset:
		if _, err := dbTx.ExecContext(ctx,
			`UPDATE assets SET data_source_id = ? WHERE id = ?`, dataSourceID, assetID); err != nil {
			return constraintErr(err, "failed to link data source to asset")
		}
		if _, err := dbTx.ExecContext(ctx,
			`UPDATE asset_markets SET data_source_id = NULL WHERE id = ?`, assetMarketID); err != nil {
			return fmt.Errorf("failed to clear asset market data source: %w", err)
		}
	case domain.AttachToAssetMarket:
		if _, err := dbTx.ExecContext(ctx,
			`UPDATE asset_markets SET data_source_id = ? WHERE id = ?`, dataSourceID, assetMarketID); err != nil {
			return constraintErr(err, "failed to link data source to asset market")
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit data source link: %w", err)
	}

	r.log.Debug().
		Int64("asset_id", assetID).
		Int64("asset_market_id", assetMarketID).
		Int64("data_source_id", dataSourceID).
		Str("target", string(target)).
		Msg("data source attached")
	return nil
}
