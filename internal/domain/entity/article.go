// Package entity defines the core domain entities and validation logic for the site.
// It contains the catalog objects (Product, Category, Article), the localized
// string type they are built from, and the validation errors shared by the use cases.
package entity

import "time"

// DefaultReadTime is the read time, in minutes, assumed for an article that
// has neither a server-provided read time nor any content to measure.
const DefaultReadTime = 5

// Article represents a published article. Articles are created server-side;
// this application only reads them.
type Article struct {
	ID string

	// Content holds raw HTML markup per locale. It is never sanitised here.
	Title    LocalizedString
	Content  LocalizedString
	Excerpt  LocalizedString
	Category LocalizedString
	Author   LocalizedString

	Image     string
	CreatedAt time.Time
	Featured  bool

	// ReadTime is the estimated reading time in minutes.
	ReadTime int
}
