package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Account is a cash or holding account. Not referenced by the recording
// workflow; tracked separately through balance snapshots.
type Account struct {
	ID   int64
	Name string
	Type string
}

// Validate ensures the account adheres to domain rules
func (a *Account) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("account name cannot be empty: %w", ErrValidation)
	}
	return nil
}

// AccountBalance is a balance snapshot for an account in one currency.
type AccountBalance struct {
	AccountID  int64
	CurrencyID int64
	Amount     decimal.Decimal
}

// ExchangeRate is an FX rate snapshot between two currencies on a date.
type ExchangeRate struct {
	Date           string
	CurrencyFromID int64
	CurrencyToID   int64
	Rate           decimal.Decimal
}

// UserSetting is a free-form key/value pair.
type UserSetting struct {
	Key   string
	Value string
}
