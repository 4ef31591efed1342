package sqlite

import (
	"context"
	"fmt"
)

// schema creates the twelve tables of the portfolio file. Column names,
// types and nullability are fixed: other tools read the same file.
// data_source_id is NULL when no source is linked at that level.
const schema = `
	-- Data sources: manual entry, price feeds
	CREATE TABLE IF NOT EXISTS data_sources (
		id INTEGER PRIMARY KEY,
		source TEXT NOT NULL
	);

	-- Locations: brokers, exchange accounts
	CREATE TABLE IF NOT EXISTS locations (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT
	);

	-- Currencies: USD, EUR, BTC
	CREATE TABLE IF NOT EXISTS currencies (
		id INTEGER PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL
	);

	-- Which currencies a location deals in. The unique index makes
	-- INSERT OR IGNORE an actual no-op on duplicate pairs.
	CREATE TABLE IF NOT EXISTS location_currencies (
		id INTEGER PRIMARY KEY,
		location_id INTEGER,
		currency_id INTEGER,
		FOREIGN KEY (location_id) REFERENCES locations (id),
		FOREIGN KEY (currency_id) REFERENCES currencies (id)
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_location_currencies_pair
		ON location_currencies(location_id, currency_id);

	-- Assets: Amazon, Bitcoin
	CREATE TABLE IF NOT EXISTS assets (
		id INTEGER PRIMARY KEY,
		type TEXT NOT NULL,
		name TEXT NOT NULL,
		symbol TEXT,
		description TEXT,
		data_source_id INTEGER,
		is_harmonised BOOLEAN,
		FOREIGN KEY (data_source_id) REFERENCES data_sources (id)
	);

	-- Markets: NYSE, NASDAQ
	CREATE TABLE IF NOT EXISTS markets (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT
	);

	-- An asset at a location/market, denominated in a currency.
	-- Transactions reference these.
	CREATE TABLE IF NOT EXISTS asset_markets (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		asset_id INTEGER,
		market_id INTEGER,
		location_id INTEGER,
		currency_id INTEGER,
		data_source_id INTEGER,
		FOREIGN KEY (asset_id) REFERENCES assets (id),
		FOREIGN KEY (location_id) REFERENCES locations (id),
		FOREIGN KEY (market_id) REFERENCES markets (id),
		FOREIGN KEY (currency_id) REFERENCES currencies (id),
		FOREIGN KEY (data_source_id) REFERENCES data_sources (id)
	);

	-- The ledger. Append-only: no update or delete statements exist.
	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY,
		asset_market_id INTEGER,
		quantity REAL NOT NULL,
		price REAL NOT NULL,
		date TEXT NOT NULL,
		location_id INTEGER,
		FOREIGN KEY (asset_market_id) REFERENCES asset_markets (id),
		FOREIGN KEY (location_id) REFERENCES locations (id)
	);

	CREATE TABLE IF NOT EXISTS accounts (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT
	);

	CREATE TABLE IF NOT EXISTS account_balances (
		account_id INTEGER,
		currency_id INTEGER,
		amount REAL,
		FOREIGN KEY (account_id) REFERENCES accounts (id),
		FOREIGN KEY (currency_id) REFERENCES currencies (id)
	);

	CREATE TABLE IF NOT EXISTS exchange_rates (
		date TEXT,
		currency_from_id INTEGER,
		currency_to_id INTEGER,
		rate REAL,
		FOREIGN KEY (currency_from_id) REFERENCES currencies (id),
		FOREIGN KEY (currency_to_id) REFERENCES currencies (id)
	);

	CREATE TABLE IF NOT EXISTS user_settings (
		setting_key TEXT PRIMARY KEY,
		setting_value TEXT
	);
`

// EnsureSchema creates any missing tables. Safe to call on every startup;
// a failure here is fatal to the caller.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
