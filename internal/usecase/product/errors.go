// Package product builds the localized product list and detail views.
package product

import "errors"

// Sentinel errors for product use case operations.
var (
	// ErrProductNotFound indicates that the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidPage indicates a page number below 1.
	ErrInvalidPage = errors.New("invalid page")
)
