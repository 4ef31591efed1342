package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the on-disk format for transaction and rate dates.
const DateLayout = "2006-01-02"

// Transaction is an executed trade against an asset market. Quantity is
// signed: buys are positive, sells negative. Rows are immutable once
// inserted; there are no update or delete operations on the ledger.
type Transaction struct {
	ID            int64
	AssetMarketID int64
	Quantity      decimal.Decimal
	Price         decimal.Decimal
	Date          string
	LocationID    int64
}

// Validate ensures the transaction adheres to domain rules
func (t *Transaction) Validate() error {
	if t.AssetMarketID <= 0 {
		return fmt.Errorf("transaction must reference an asset market: %w", ErrValidation)
	}
	if t.LocationID <= 0 {
		return fmt.Errorf("transaction must reference a location: %w", ErrValidation)
	}
	if t.Quantity.IsZero() {
		return fmt.Errorf("transaction quantity cannot be zero: %w", ErrValidation)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("transaction price cannot be negative: %w", ErrValidation)
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return fmt.Errorf("transaction date must be in YYYY-MM-DD format: %w", ErrValidation)
	}
	return nil
}

// LedgerEntry is one fully resolved row of the transaction ledger view.
// Transactions whose references cannot all be resolved are excluded.
type LedgerEntry struct {
	Date            string
	Symbol          string
	AssetName       string
	AssetMarketName string
	Price           decimal.Decimal
	Quantity        decimal.Decimal
	Total           decimal.Decimal
	LocationName    string
	CurrencyCode    string
}

// AssetPosition is one row of the asset overview: the signed sum of
// transaction quantities for an asset at a location.
type AssetPosition struct {
	AssetName    string
	LocationName string
	Quantity     decimal.Decimal
}
