package pagination

// Metadata is the pagination block reported by the catalog API.
// The server is authoritative for every field.
type Metadata struct {
	CurrentPage int   `json:"currentPage"` // Page actually served (1-based)
	TotalPages  int   `json:"totalPages"`  // Number of pages for the current filter
	Limit       int   `json:"limit"`       // Items per page
	Total       int64 `json:"total"`       // Total number of items across all pages
}

// Known reports whether the page bounds have been reported.
func (m Metadata) Known() bool {
	return m.TotalPages > 0
}
