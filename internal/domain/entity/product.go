package entity

// Category groups products. Its ID is the filter key sent to the catalog API
// and its Name is the label shown in the category filter.
type Category struct {
	ID   string
	Name LocalizedString
}

// Product is a catalog item as returned by the catalog API.
// Products are immutable once fetched; a refetch replaces them wholesale.
type Product struct {
	ID          string
	Name        LocalizedString
	Description LocalizedString
	Image       string
	Category    Category
}
