package domain

import "fmt"

// Location is the institution holding assets or accounts (a broker, an
// exchange account). Distinct from Market, which is the trading venue.
type Location struct {
	ID          int64
	Name        string
	Description string
}

// Validate ensures the location adheres to domain rules
func (l *Location) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("location name cannot be empty: %w", ErrValidation)
	}
	return nil
}
