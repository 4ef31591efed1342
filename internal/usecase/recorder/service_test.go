package recorder

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dferreira/folio-backend/internal/domain"
)

// MockLocationRepository is a mock implementation of LocationRepository for testing
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) List(ctx context.Context) ([]domain.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Location), args.Error(1)
}

func (m *MockLocationRepository) Create(ctx context.Context, name, description string) (int64, error) {
	args := m.Called(ctx, name, description)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLocationRepository) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockLocationRepository) LinkCurrency(ctx context.Context, locationID, currencyID int64) error {
	args := m.Called(ctx, locationID, currencyID)
	return args.Error(0)
}

func (m *MockLocationRepository) CurrencyID(ctx context.Context, locationID int64) (*int64, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int64), args.Error(1)
}

// MockCurrencyRepository is a mock implementation of CurrencyRepository for testing
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) List(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) Create(ctx context.Context, code, name string) (int64, error) {
	args := m.Called(ctx, code, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCurrencyRepository) GetByID(ctx context.Context, id int64) (*domain.Currency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) Code(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

// MockAssetRepository is a mock implementation of AssetRepository for testing
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) List(ctx context.Context) ([]domain.Asset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) Create(ctx context.Context, asset domain.Asset) (int64, error) {
	args := m.Called(ctx, asset)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssetRepository) GetByID(ctx context.Context, id int64) (*domain.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) Name(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockAssetRepository) HasDataSource(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssetRepository) DataSource(ctx context.Context, id int64) (*domain.DataSource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DataSource), args.Error(1)
}

// MockMarketRepository is a mock implementation of MarketRepository for testing
type MockMarketRepository struct {
	mock.Mock
}

func (m *MockMarketRepository) List(ctx context.Context) ([]domain.Market, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Market), args.Error(1)
}

func (m *MockMarketRepository) Create(ctx context.Context, name, description string) (int64, error) {
	args := m.Called(ctx, name, description)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMarketRepository) GetByID(ctx context.Context, id int64) (*domain.Market, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Market), args.Error(1)
}

// MockAssetMarketRepository is a mock implementation of AssetMarketRepository for testing
type MockAssetMarketRepository struct {
	mock.Mock
}

func (m *MockAssetMarketRepository) ListByLocation(ctx context.Context, locationID int64) ([]domain.AssetMarket, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AssetMarket), args.Error(1)
}

func (m *MockAssetMarketRepository) Create(ctx context.Context, am domain.AssetMarket) (int64, error) {
	args := m.Called(ctx, am)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssetMarketRepository) GetByID(ctx context.Context, id int64) (*domain.AssetMarket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssetMarket), args.Error(1)
}

func (m *MockAssetMarketRepository) CurrencyID(ctx context.Context, id int64) (*int64, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int64), args.Error(1)
}

func (m *MockAssetMarketRepository) DataSource(ctx context.Context, id int64) (*domain.DataSource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DataSource), args.Error(1)
}

func (m *MockAssetMarketRepository) AttachDataSource(ctx context.Context, assetID, assetMarketID, dataSourceID int64, target domain.AttachTarget) error {
	args := m.Called(ctx, assetID, assetMarketID, dataSourceID, target)
	return args.Error(0)
}

// MockDataSourceRepository is a mock implementation of DataSourceRepository for testing
type MockDataSourceRepository struct {
	mock.Mock
}

func (m *MockDataSourceRepository) List(ctx context.Context) ([]domain.DataSource, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DataSource), args.Error(1)
}

func (m *MockDataSourceRepository) Create(ctx context.Context, source string) (int64, error) {
	args := m.Called(ctx, source)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDataSourceRepository) GetByID(ctx context.Context, id int64) (*domain.DataSource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DataSource), args.Error(1)
}

// MockTransactionRepository is a mock implementation of TransactionRepository for testing
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) List(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx domain.Transaction) (int64, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(int64), args.Error(1)
}

type mocks struct {
	locations    *MockLocationRepository
	currencies   *MockCurrencyRepository
	assets       *MockAssetRepository
	markets      *MockMarketRepository
	assetMarkets *MockAssetMarketRepository
	dataSources  *MockDataSourceRepository
	transactions *MockTransactionRepository
}

func newServiceWithMocks() (*Service, *mocks) {
	m := &mocks{
		locations:    new(MockLocationRepository),
		currencies:   new(MockCurrencyRepository),
		assets:       new(MockAssetRepository),
		markets:      new(MockMarketRepository),
		assetMarkets: new(MockAssetMarketRepository),
		dataSources:  new(MockDataSourceRepository),
		transactions: new(MockTransactionRepository),
	}
	svc := NewService(m.locations, m.currencies, m.assets, m.markets,
		m.assetMarkets, m.dataSources, m.transactions, zerolog.Nop())
	return svc, m
}

func TestRecordTransaction_ExistingLocationAndAssetMarket(t *testing.T) {
	ctx := context.Background()
	svc, m := newServiceWithMocks()

	m.transactions.On("Create", ctx, domain.Transaction{
		AssetMarketID: 5,
		Quantity:      decimal.NewFromInt(10),
		Price:         decimal.NewFromFloat(100.0),
		Date:          "2024-01-01",
		LocationID:    3,
	}).Return(int64(1), nil)

	id, err := svc.RecordTransaction(ctx, RecordTransactionInput{
		Location:    LocationInput{ID: 3},
		AssetMarket: AssetMarketInput{ID: 5},
		Quantity:    decimal.NewFromInt(10),
		Price:       decimal.NewFromFloat(100.0),
		Date:        "2024-01-01",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	m.transactions.AssertExpectations(t)
	// Nothing else should have been touched
	m.locations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	m.assetMarkets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordTransaction_CreatesEverything(t *testing.T) {
	ctx := context.Background()
	svc, m := newServiceWithMocks()

	m.locations.On("Create", ctx, "Broker A", "").Return(int64(1), nil)
	m.assets.On("Create", ctx, domain.Asset{
		Type: "equity", Name: "Amazon", Symbol: "AMZN",
	}).Return(int64(2), nil)
	m.markets.On("Create", ctx, "NASDAQ", "").Return(int64(3), nil)
	m.currencies.On("Create", ctx, "USD", "US Dollar").Return(int64(4), nil)
	m.assetMarkets.On("Create", ctx, domain.AssetMarket{
		Name:       "AMZN @ NASDAQ",
		AssetID:    2,
		MarketID:   3,
		LocationID: 1,
		CurrencyID: 4,
	}).Return(int64(5), nil)
	m.locations.On("LinkCurrency", ctx, int64(1), int64(4)).Return(nil)
	m.assets.On("HasDataSource", ctx, int64(2)).Return(false, nil)
	m.dataSources.On("Create", ctx, "manual_entry").Return(int64(6), nil)
	m.assetMarkets.On("AttachDataSource", ctx, int64(2), int64(5), int64(6), domain.AttachToAsset).Return(nil)
	m.transactions.On("Create", ctx, mock.MatchedBy(func(tx domain.Transaction) bool {
		return tx.AssetMarketID == 5 && tx.LocationID == 1 && tx.Date == "2024-01-01"
	})).Return(int64(7), nil)

	id, err := svc.RecordTransaction(ctx, RecordTransactionInput{
		Location: LocationInput{Name: "Broker A"},
		AssetMarket: AssetMarketInput{
			Name:     "AMZN @ NASDAQ",
			Asset:    AssetInput{Type: "equity", Name: "Amazon", Symbol: "AMZN"},
			Market:   MarketInput{Name: "NASDAQ"},
			Currency: CurrencyInput{Code: "USD", Name: "US Dollar"},
			DataSource: &DataSourceInput{
				Source: "manual_entry",
				Target: domain.AttachToAsset,
			},
		},
		Quantity: decimal.NewFromInt(10),
		Price:    decimal.NewFromFloat(100.0),
		Date:     "2024-01-01",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	m.locations.AssertExpectations(t)
	m.assets.AssertExpectations(t)
	m.markets.AssertExpectations(t)
	m.currencies.AssertExpectations(t)
	m.assetMarkets.AssertExpectations(t)
	m.dataSources.AssertExpectations(t)
	m.transactions.AssertExpectations(t)
}

func TestRecordTransaction_AssetAlreadyHasSource(t *testing.T) {
	ctx := context.Background()
	svc, m := newServiceWithMocks()

	m.assetMarkets.On("Create", ctx, mock.Anything).Return(int64(5), nil)
	m.locations.On("LinkCurrency", ctx, int64(3), int64(4)).Return(nil)
	m.assets.On("HasDataSource", ctx, int64(2)).Return(true, nil)
	m.transactions.On("Create", ctx, mock.Anything).Return(int64(9), nil)

	_, err := svc.RecordTransaction(ctx, RecordTransactionInput{
		Location: LocationInput{ID: 3},
		AssetMarket: AssetMarketInput{
			Name:     "AMZN @ NASDAQ",
			Asset:    AssetInput{ID: 2},
			Market:   MarketInput{ID: 1},
			Currency: CurrencyInput{ID: 4},
		},
		Quantity: decimal.NewFromInt(1),
		Price:    decimal.NewFromFloat(10),
		Date:     "2024-01-01",
	})

	require.NoError(t, err)
	m.assetMarkets.AssertNotCalled(t, "AttachDataSource",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordTransaction_MissingDataSourceChoice(t *testing.T) {
	ctx := context.Background()
	svc, m := newServiceWithMocks()

	m.assetMarkets.On("Create", ctx, mock.Anything).Return(int64(5), nil)
	m.locations.On("LinkCurrency", ctx, int64(3), int64(4)).Return(nil)
	m.assets.On("HasDataSource", ctx, int64(2)).Return(false, nil)

	_, err := svc.RecordTransaction(ctx, RecordTransactionInput{
		Location: LocationInput{ID: 3},
		AssetMarket: AssetMarketInput{
			Name:     "AMZN @ NASDAQ",
			Asset:    AssetInput{ID: 2},
			Market:   MarketInput{ID: 1},
			Currency: CurrencyInput{ID: 4},
		},
		Quantity: decimal.NewFromInt(1),
		Price:    decimal.NewFromFloat(10),
		Date:     "2024-01-01",
	})

	assert.ErrorIs(t, err, domain.ErrMissingDataSource)
	m.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordTransaction_InvalidDate(t *testing.T) {
	ctx := context.Background()
	svc, m := newServiceWithMocks()

	_, err := svc.RecordTransaction(ctx, RecordTransactionInput{
		Location:    LocationInput{ID: 3},
		AssetMarket: AssetMarketInput{ID: 5},
		Quantity:    decimal.NewFromInt(1),
		Price:       decimal.NewFromFloat(10),
		Date:        "not-a-date",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	m.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordTransaction_InvalidAttachTarget(t *testing.T) {
	ctx := context.Background()
	svc, m := newServiceWithMocks()

	m.assetMarkets.On("Create", ctx, mock.Anything).Return(int64(5), nil)
	m.locations.On("LinkCurrency", ctx, int64(3), int64(4)).Return(nil)
	m.assets.On("HasDataSource", ctx, int64(2)).Return(false, nil)

	_, err := svc.RecordTransaction(ctx, RecordTransactionInput{
		Location: LocationInput{ID: 3},
		AssetMarket: AssetMarketInput{
			Name:     "AMZN @ NASDAQ",
			Asset:    AssetInput{ID: 2},
			Market:   MarketInput{ID: 1},
			Currency: CurrencyInput{ID: 4},
			DataSource: &DataSourceInput{
				Source: "manual_entry",
				Target: domain.AttachTarget("somewhere"),
			},
		},
		Quantity: decimal.NewFromInt(1),
		Price:    decimal.NewFromFloat(10),
		Date:     "2024-01-01",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidAttachTarget)
}
