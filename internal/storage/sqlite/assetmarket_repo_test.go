package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dferreira/folio-backend/internal/domain"
)

func TestAssetMarketRepository_ListAndLookup(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	f := seedAssetMarket(t, db)
	repo := NewAssetMarketRepository(db, testLogger())

	markets, err := repo.ListByLocation(ctx, f.locationID)
	require.NoError(t, err)
	require.Len(t, markets, 1)
	assert.Equal(t, "AMZN @ NASDAQ", markets[0].Name)

	am, err := repo.GetByID(ctx, f.assetMarketID)
	require.NoError(t, err)
	require.NotNil(t, am)
	assert.Equal(t, f.assetID, am.AssetID)
	assert.Nil(t, am.DataSourceID)

	currencyID, err := repo.CurrencyID(ctx, f.assetMarketID)
	require.NoError(t, err)
	require.NotNil(t, currencyID)
	assert.Equal(t, f.currencyID, *currencyID)

	currencyID, err = repo.CurrencyID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, currencyID, "absent asset market yields no currency")
}

func TestAssetMarketRepository_CreateRejectsDanglingReferences(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewAssetMarketRepository(db, testLogger())

	_, err := repo.Create(ctx, domain.AssetMarket{
		Name:       "ghost",
		AssetID:    11,
		MarketID:   12,
		LocationID: 13,
		CurrencyID: 14,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConstraint)
}

func TestAssetMarketRepository_AttachDataSourceToAsset(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	f := seedAssetMarket(t, db)
	assets := NewAssetRepository(db, testLogger())
	repo := NewAssetMarketRepository(db, testLogger())

	// Start with the source on the asset market, then move it to the asset
	require.NoError(t, repo.AttachDataSource(ctx, f.assetID, f.assetMarketID, f.dataSourceID, domain.AttachToAssetMarket))
	require.NoError(t, repo.AttachDataSource(ctx, f.assetID, f.assetMarketID, f.dataSourceID, domain.AttachToAsset))

	asset, err := assets.GetByID(ctx, f.assetID)
	require.NoError(t, err)
	require.NotNil(t, asset.DataSourceID)
	assert.Equal(t, f.dataSourceID, *asset.DataSourceID)

	// The asset market's own pointer must have been cleared
	am, err := repo.GetByID(ctx, f.assetMarketID)
	require.NoError(t, err)
	assert.Nil(t, am.DataSourceID)
}

func TestAssetMarketRepository_AttachDataSourceToAssetMarket(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	f := seedAssetMarket(t, db)
	assets := NewAssetRepository(db, testLogger())
	repo := NewAssetMarketRepository(db, testLogger())

	require.NoError(t, repo.AttachDataSource(ctx, f.assetID, f.assetMarketID, f.dataSourceID, domain.AttachToAssetMarket))

	am, err := repo.GetByID(ctx, f.assetMarketID)
	require.NoError(t, err)
	require.NotNil(t, am.DataSourceID)
	assert.Equal(t, f.dataSourceID, *am.DataSourceID)

	// Asset-level pointer stays untouched
	asset, err := assets.GetByID(ctx, f.assetID)
	require.NoError(t, err)
	assert.Nil(t, asset.DataSourceID)

	ds, err := repo.DataSource(ctx, f.assetMarketID)
	require.NoError(t, err)
	require.NotNil(t, ds)
	assert.Equal(t, "manual_entry", ds.Source)
}

func TestAssetMarketRepository_AttachDataSourceInvalidTarget(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	f := seedAssetMarket(t, db)
	repo := NewAssetMarketRepository(db, testLogger())

	err := repo.AttachDataSource(ctx, f.assetID, f.assetMarketID, f.dataSourceID, domain.AttachTarget("portfolio"))
	assert.ErrorIs(t, err, domain.ErrInvalidAttachTarget)
}
