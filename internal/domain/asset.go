package domain

import "fmt"

// Asset represents a tradable instrument (equity, crypto, fund).
// DataSourceID is nil when the data source is linked at the asset-market
// level instead, or not linked at all.
type Asset struct {
	ID           int64
	Type         string
	Name         string
	Symbol       string
	Description  string
	DataSourceID *int64
	IsHarmonised bool
}

// Validate ensures the asset adheres to domain rules
func (a *Asset) Validate() error {
	if a.Type == "" {
		return fmt.Errorf("asset type cannot be empty: %w", ErrValidation)
	}
	if a.Name == "" {
		return fmt.Errorf("asset name cannot be empty: %w", ErrValidation)
	}
	return nil
}

// AssetMarket is the concrete pairing of an asset at a specific location and
// market, denominated in a specific currency. Transactions reference asset
// markets, never assets directly.
//
// DataSourceID is nil when the source is linked at the asset level: the two
// pointers are mutually exclusive, and the exclusion is an application rule,
// not a database constraint.
type AssetMarket struct {
	ID           int64
	Name         string
	Description  string
	AssetID      int64
	MarketID     int64
	LocationID   int64
	CurrencyID   int64
	DataSourceID *int64
}

// Validate ensures the asset market adheres to domain rules
func (am *AssetMarket) Validate() error {
	if am.Name == "" {
		return fmt.Errorf("asset market name cannot be empty: %w", ErrValidation)
	}
	if am.AssetID <= 0 {
		return fmt.Errorf("asset market must reference an asset: %w", ErrValidation)
	}
	if am.MarketID <= 0 {
		return fmt.Errorf("asset market must reference a market: %w", ErrValidation)
	}
	if am.LocationID <= 0 {
		return fmt.Errorf("asset market must reference a location: %w", ErrValidation)
	}
	if am.CurrencyID <= 0 {
		return fmt.Errorf("asset market must reference a currency: %w", ErrValidation)
	}
	return nil
}
