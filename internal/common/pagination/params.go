package pagination

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Params represents the listing query parameters of a request.
type Params struct {
	Page     int    // 1-based page number
	Limit    int    // Items per page
	Category string // Category ID filter; empty means all categories
}

// ParseQueryParams parses pagination parameters from HTTP request query string.
// Returns Params with defaults if parameters are missing.
//
// Query parameters:
//   - page: Page number (must be positive integer)
//   - limit: Items per page (must be between 1 and config.MaxLimit)
//   - category: Category ID (optional)
//
// Returns an error if parameters are invalid.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	q := r.URL.Query()
	params := Params{
		Page:     config.DefaultPage,
		Limit:    config.DefaultLimit,
		Category: strings.TrimSpace(q.Get("category")),
	}

	if pageStr := q.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = limit
	}

	return params, nil
}
