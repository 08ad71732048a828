// Package pathutil maps request paths onto route templates and validates
// path identifiers.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
// Template may reference capture groups ($1).
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// Unmatched is the label for paths no route serves.
const Unmatched = "/:unmatched"

// pathPatterns are the storefront routes, most specific first.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/[A-Za-z]{2,3}(?:-[A-Za-z0-9]{2,8})?/(products|articles)/[^/]+$`), Template: "/:locale/$1/:id"},
	{Pattern: regexp.MustCompile(`^/[A-Za-z]{2,3}(?:-[A-Za-z0-9]{2,8})?/(products|articles|categories|contact)$`), Template: "/:locale/$1"},
}

// staticPaths are served verbatim.
var staticPaths = map[string]bool{
	"/health":     true,
	"/live":       true,
	"/ready":      true,
	"/metrics":    true,
	"/revalidate": true,
}

// NormalizePath maps a request path onto its route template so metrics labels
// stay bounded. Locale segments and ids are replaced by placeholders. Paths
// no route serves collapse to Unmatched.
//
// Examples:
//
//	NormalizePath("/en/products/p01")   // "/:locale/products/:id"
//	NormalizePath("/ar/articles")       // "/:locale/articles"
//	NormalizePath("/health")            // "/health"
//	NormalizePath("/wp-admin/setup.php") // "/:unmatched"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if staticPaths[path] {
		return path
	}
	for _, p := range pathPatterns {
		if m := p.Pattern.FindStringSubmatchIndex(path); m != nil {
			return string(p.Pattern.ExpandString(nil, p.Template, path, m))
		}
	}
	return Unmatched
}

// GetExpectedCardinality returns an upper bound on the number of distinct
// labels NormalizePath produces.
func GetExpectedCardinality() int {
	// 2 templated item routes, 4 templated list routes, the static paths and Unmatched.
	return 2 + 4 + len(staticPaths) + 1
}
