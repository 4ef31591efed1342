package domain

import "fmt"

// Currency is a unit of denomination, identified by a unique code like "USD".
type Currency struct {
	ID   int64
	Code string
	Name string
}

// Validate ensures the currency adheres to domain rules
func (c *Currency) Validate() error {
	if c.Code == "" {
		return fmt.Errorf("currency code cannot be empty: %w", ErrValidation)
	}
	if c.Name == "" {
		return fmt.Errorf("currency name cannot be empty: %w", ErrValidation)
	}
	return nil
}
