package domain

import "fmt"

// Market is a trading venue like NASDAQ or NYSE. The same asset can trade on
// several markets and be held at several locations.
type Market struct {
	ID          int64
	Name        string
	Description string
}

// Validate ensures the market adheres to domain rules
func (m *Market) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("market name cannot be empty: %w", ErrValidation)
	}
	return nil
}
