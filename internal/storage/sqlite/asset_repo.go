package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dferreira/folio-backend/internal/domain"
)

// assetRepository implements domain.AssetRepository
type assetRepository struct {
	db  *DB
	log zerolog.Logger
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *DB, log zerolog.Logger) domain.AssetRepository {
	return &assetRepository{db: db, log: log.With().Str("repo", "asset").Logger()}
}

const assetColumns = `id, type, name, symbol, description, data_source_id, is_harmonised`

func scanAsset(scan func(...any) error) (*domain.Asset, error) {
	var a domain.Asset
	var symbol, desc sql.NullString
	var dataSourceID sql.NullInt64
	var harmonised sql.NullBool
	if err := scan(&a.ID, &a.Type, &a.Name, &symbol, &desc, &dataSourceID, &harmonised); err != nil {
		return nil, err
	}
	a.Symbol = symbol.String
	a.Description = desc.String
	a.IsHarmonised = harmonised.Bool
	if dataSourceID.Valid {
		a.DataSourceID = &dataSourceID.Int64
	}
	return &a, nil
}

func (r *assetRepository) List(ctx context.Context) ([]domain.Asset, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+assetColumns+` FROM assets`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	var assets []domain.Asset
	for rows.Next() {
		a, err := scanAsset(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assets: %w", err)
	}

	return assets, nil
}

func (r *assetRepository) Create(ctx context.Context, asset domain.Asset) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO assets (name, symbol, type, description, is_harmonised) VALUES (?, ?, ?, ?, ?)`,
		asset.Name, asset.Symbol, asset.Type, asset.Description, asset.IsHarmonised)
	if err != nil {
		return 0, constraintErr(err, "failed to create asset")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read asset id: %w", err)
	}

	r.log.Debug().Int64("id", id).Str("symbol", asset.Symbol).Msg("asset created")
	return id, nil
}

func (r *assetRepository) GetByID(ctx context.Context, id int64) (*domain.Asset, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = ?`, id)
	a, err := scanAsset(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get asset by id: %w", err)
	}

	return a, nil
}

func (r *assetRepository) Name(ctx context.Context, id int64) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx, `SELECT name FROM assets WHERE id = ?`, id).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get asset name: %w", err)
	}

	return name, nil
}

// HasDataSource is true iff the asset exists and its data_source_id is set.
// A source linked at the asset-market level does not count.
func (r *assetRepository) HasDataSource(ctx context.Context, id int64) (bool, error) {
	var dataSourceID sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT data_source_id FROM assets WHERE id = ?`, id).Scan(&dataSourceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check asset data source: %w", err)
	}

	return dataSourceID.Valid, nil
}

func (r *assetRepository) DataSource(ctx context.Context, id int64) (*domain.DataSource, error) {
	var ds domain.DataSource
	err := r.db.QueryRowContext(ctx,
		`SELECT ds.id, ds.source
		 FROM data_sources ds
		 JOIN assets a ON a.data_source_id = ds.id
		 WHERE a.id = ?`, id).
		Scan(&ds.ID, &ds.Source)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get asset data source: %w", err)
	}

	return &ds, nil
}
