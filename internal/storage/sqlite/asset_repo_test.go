package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dferreira/folio-backend/internal/domain"
)

func TestAssetRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewAssetRepository(db, testLogger())

	id, err := repo.Create(ctx, domain.Asset{
		Type:         "equity",
		Name:         "Amazon",
		Symbol:       "AMZN",
		Description:  "e-commerce",
		IsHarmonised: true,
	})
	require.NoError(t, err)

	asset, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, asset)
	assert.Equal(t, "Amazon", asset.Name)
	assert.Equal(t, "AMZN", asset.Symbol)
	assert.True(t, asset.IsHarmonised)
	assert.Nil(t, asset.DataSourceID, "new assets have no data source")

	name, err := repo.Name(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Amazon", name)

	name, err = repo.Name(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, "", name)
}

func TestAssetRepository_HasDataSource(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	f := seedAssetMarket(t, db)
	assets := NewAssetRepository(db, testLogger())
	assetMarkets := NewAssetMarketRepository(db, testLogger())

	// Freshly created asset: pointer unset
	has, err := assets.HasDataSource(ctx, f.assetID)
	require.NoError(t, err)
	assert.False(t, has)

	// Nonexistent asset: still false, not an error
	has, err = assets.HasDataSource(ctx, 99)
	require.NoError(t, err)
	assert.False(t, has)

	// Source attached at asset level: true
	err = assetMarkets.AttachDataSource(ctx, f.assetID, f.assetMarketID, f.dataSourceID, domain.AttachToAsset)
	require.NoError(t, err)

	has, err = assets.HasDataSource(ctx, f.assetID)
	require.NoError(t, err)
	assert.True(t, has)

	ds, err := assets.DataSource(ctx, f.assetID)
	require.NoError(t, err)
	require.NotNil(t, ds)
	assert.Equal(t, "manual_entry", ds.Source)
}
