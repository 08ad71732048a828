// Package pagination provides page arithmetic, query parsing and page-button
// generation for the paginated catalog and article listings.
package pagination

import "fmt"

// Config holds pagination configuration settings.
type Config struct {
	DefaultPage  int // Default page number (typically 1)
	DefaultLimit int // Default items per page (the catalog shows 10)
	MaxLimit     int // Maximum allowed items per page
}

// DefaultConfig returns the default pagination configuration.
// Default values: page=1, limit=10, max=100
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 10,
		MaxLimit:     100,
	}
}

// Validate checks that the defaults are usable.
func (c Config) Validate() error {
	if c.DefaultPage < 1 {
		return fmt.Errorf("default page must be a positive integer")
	}
	if c.MaxLimit < 1 {
		return fmt.Errorf("max limit must be a positive integer")
	}
	if c.DefaultLimit < 1 || c.DefaultLimit > c.MaxLimit {
		return fmt.Errorf("default limit must be between 1 and %d", c.MaxLimit)
	}
	return nil
}
