package pagination

// Clamp bounds page to [1, totalPages]. A non-positive totalPages means the
// bound is not known yet, in which case only the lower bound applies.
func Clamp(page, totalPages int) int {
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	return page
}
