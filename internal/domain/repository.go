package domain

import "context"

// Repository interfaces for the persistence layer. Lookups against ids that
// do not exist return a nil result and a nil error: absence is an expected,
// recoverable condition, not a failure.

// DataSourceRepository defines persistence operations for data sources
type DataSourceRepository interface {
	// List retrieves all data sources in insertion order
	List(ctx context.Context) ([]DataSource, error)

	// Create inserts a new data source and returns its generated id
	Create(ctx context.Context, source string) (int64, error)

	// GetByID retrieves a data source by id, nil if absent
	GetByID(ctx context.Context, id int64) (*DataSource, error)
}

// LocationRepository defines persistence operations for locations and the
// location-currency link table
type LocationRepository interface {
	// List retrieves all locations in insertion order
	List(ctx context.Context) ([]Location, error)

	// Create inserts a new location and returns its generated id
	Create(ctx context.Context, name, description string) (int64, error)

	// GetByID retrieves a location by id, nil if absent
	GetByID(ctx context.Context, id int64) (*Location, error)

	// LinkCurrency records that a location deals in a currency.
	// Linking an already linked pair is a no-op, never an error.
	LinkCurrency(ctx context.Context, locationID, currencyID int64) error

	// CurrencyID returns the id of a currency linked to the location,
	// nil if none is linked
	CurrencyID(ctx context.Context, locationID int64) (*int64, error)
}

// CurrencyRepository defines persistence operations for currencies
type CurrencyRepository interface {
	// List retrieves all currencies in insertion order
	List(ctx context.Context) ([]Currency, error)

	// Create inserts a new currency and returns its generated id.
	// Duplicate codes fail with ErrConstraint.
	Create(ctx context.Context, code, name string) (int64, error)

	// GetByID retrieves a currency by id, nil if absent
	GetByID(ctx context.Context, id int64) (*Currency, error)

	// Code returns the code for a currency id, "" if absent
	Code(ctx context.Context, id int64) (string, error)
}

// AssetRepository defines persistence operations for assets
type AssetRepository interface {
	// List retrieves all assets in insertion order
	List(ctx context.Context) ([]Asset, error)

	// Create inserts a new asset and returns its generated id
	Create(ctx context.Context, asset Asset) (int64, error)

	// GetByID retrieves an asset by id, nil if absent
	GetByID(ctx context.Context, id int64) (*Asset, error)

	// Name returns the asset's name, "" if absent
	Name(ctx context.Context, id int64) (string, error)

	// HasDataSource reports whether the asset has a data source linked
	// at the asset level
	HasDataSource(ctx context.Context, id int64) (bool, error)

	// DataSource returns the data source linked at the asset level,
	// nil if none
	DataSource(ctx context.Context, id int64) (*DataSource, error)
}

// MarketRepository defines persistence operations for markets
type MarketRepository interface {
	// List retrieves all markets in insertion order
	List(ctx context.Context) ([]Market, error)

	// Create inserts a new market and returns its generated id
	Create(ctx context.Context, name, description string) (int64, error)

	// GetByID retrieves a market by id, nil if absent
	GetByID(ctx context.Context, id int64) (*Market, error)
}

// AssetMarketRepository defines persistence operations for asset markets
type AssetMarketRepository interface {
	// ListByLocation retrieves the asset markets held at a location
	ListByLocation(ctx context.Context, locationID int64) ([]AssetMarket, error)

	// Create inserts a new asset market and returns its generated id
	Create(ctx context.Context, am AssetMarket) (int64, error)

	// GetByID retrieves an asset market by id, nil if absent
	GetByID(ctx context.Context, id int64) (*AssetMarket, error)

	// CurrencyID returns the id of the currency the asset market is
	// denominated in, nil if the asset market does not exist
	CurrencyID(ctx context.Context, id int64) (*int64, error)

	// DataSource returns the data source linked at the asset-market
	// level, nil if none
	DataSource(ctx context.Context, id int64) (*DataSource, error)

	// AttachDataSource links a data source to either the asset or the
	// asset market. Attaching at the asset level clears the asset
	// market's own pointer so that exactly one level is authoritative;
	// attaching at the asset-market level leaves the asset untouched.
	AttachDataSource(ctx context.Context, assetID, assetMarketID, dataSourceID int64, target AttachTarget) error
}

// TransactionRepository defines persistence operations for the ledger
type TransactionRepository interface {
	// List retrieves all transactions in insertion order
	List(ctx context.Context) ([]Transaction, error)

	// Create inserts a new transaction and returns its generated id
	Create(ctx context.Context, tx Transaction) (int64, error)
}

// AccountRepository defines persistence operations for accounts and their
// balance snapshots
type AccountRepository interface {
	// List retrieves all accounts in insertion order
	List(ctx context.Context) ([]Account, error)

	// Create inserts a new account and returns its generated id
	Create(ctx context.Context, name, accountType string) (int64, error)

	// GetByID retrieves an account by id, nil if absent
	GetByID(ctx context.Context, id int64) (*Account, error)

	// AddBalance records a balance snapshot for the account
	AddBalance(ctx context.Context, balance AccountBalance) error

	// Balances retrieves the balance snapshots for an account
	Balances(ctx context.Context, accountID int64) ([]AccountBalance, error)
}

// ExchangeRateRepository defines persistence operations for FX rate snapshots
type ExchangeRateRepository interface {
	// Add records a rate snapshot
	Add(ctx context.Context, rate ExchangeRate) error

	// Latest returns the most recent rate between two currencies,
	// nil if none has been recorded
	Latest(ctx context.Context, fromID, toID int64) (*ExchangeRate, error)
}

// SettingRepository defines persistence operations for user settings
type SettingRepository interface {
	// List retrieves all settings
	List(ctx context.Context) ([]UserSetting, error)

	// Put stores a value under a key, replacing any previous value
	Put(ctx context.Context, key, value string) error

	// Get returns the value stored under a key, "" if absent
	Get(ctx context.Context, key string) (string, error)
}

// ReportRepository defines the composite read operations behind the
// user-facing views
type ReportRepository interface {
	// Ledger returns every fully resolvable transaction joined with its
	// asset market, asset, location and currency
	Ledger(ctx context.Context) ([]LedgerEntry, error)

	// AssetOverview returns the signed quantity owned per asset per
	// location
	AssetOverview(ctx context.Context) ([]AssetPosition, error)
}
