// Package article builds the localized article list and detail views.
// Articles are read-only here: search and category filtering operate on the
// full list fetched from the catalog API.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article does not exist.
	ErrArticleNotFound = errors.New("article not found")
)
