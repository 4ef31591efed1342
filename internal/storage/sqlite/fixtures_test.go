package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dferreira/folio-backend/internal/domain"
)

type fixture struct {
	locationID    int64
	currencyID    int64
	assetID       int64
	marketID      int64
	assetMarketID int64
	dataSourceID  int64
}

// seedAssetMarket creates one of everything an asset market references,
// plus a data source left unattached.
func seedAssetMarket(t *testing.T, db *DB) fixture {
	t.Helper()
	ctx := context.Background()

	var f fixture
	var err error

	f.locationID, err = NewLocationRepository(db, testLogger()).Create(ctx, "Broker A", "")
	require.NoError(t, err)
	f.currencyID, err = NewCurrencyRepository(db, testLogger()).Create(ctx, "USD", "US Dollar")
	require.NoError(t, err)
	f.assetID, err = NewAssetRepository(db, testLogger()).Create(ctx, domain.Asset{
		Type:   "equity",
		Name:   "Amazon",
		Symbol: "AMZN",
	})
	require.NoError(t, err)
	f.marketID, err = NewMarketRepository(db, testLogger()).Create(ctx, "NASDAQ", "")
	require.NoError(t, err)
	f.assetMarketID, err = NewAssetMarketRepository(db, testLogger()).Create(ctx, domain.AssetMarket{
		Name:       "AMZN @ NASDAQ",
		AssetID:    f.assetID,
		MarketID:   f.marketID,
		LocationID: f.locationID,
		CurrencyID: f.currencyID,
	})
	require.NoError(t, err)
	f.dataSourceID, err = NewDataSourceRepository(db, testLogger()).Create(ctx, "manual_entry")
	require.NoError(t, err)

	return f
}
