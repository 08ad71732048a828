package pathutil

import (
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "product detail", path: "/en/products/p01", expected: "/:locale/products/:id"},
		{name: "product detail arabic", path: "/ar/products/65f1c2a9", expected: "/:locale/products/:id"},
		{name: "article detail", path: "/fr/articles/a1", expected: "/:locale/articles/:id"},
		{name: "detail with trailing slash", path: "/en/articles/a1/", expected: "/:locale/articles/:id"},
		{name: "detail with query", path: "/en/products/p01?ref=home", expected: "/:locale/products/:id"},
		{name: "product list", path: "/en/products", expected: "/:locale/products"},
		{name: "article list", path: "/ar/articles", expected: "/:locale/articles"},
		{name: "categories", path: "/fr/categories", expected: "/:locale/categories"},
		{name: "contact", path: "/en/contact", expected: "/:locale/contact"},
		{name: "region subtag", path: "/fr-FR/products", expected: "/:locale/products"},
		{name: "unsupported locale still templated", path: "/de/products", expected: "/:locale/products"},

		{name: "health", path: "/health", expected: "/health"},
		{name: "live", path: "/live", expected: "/live"},
		{name: "metrics", path: "/metrics", expected: "/metrics"},
		{name: "revalidate", path: "/revalidate", expected: "/revalidate"},

		{name: "unknown path", path: "/wp-admin/setup.php", expected: Unmatched},
		{name: "nested unknown", path: "/en/products/p01/reviews", expected: Unmatched},
		{name: "root", path: "/", expected: Unmatched},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestNormalizePath_BoundedCardinality(t *testing.T) {
	paths := []string{"/health", "/live", "/ready", "/metrics", "/revalidate", "/x/y/z"}
	for _, l := range []string{"en", "ar", "fr", "de"} {
		for _, r := range []string{"products", "articles", "categories", "contact"} {
			paths = append(paths, "/"+l+"/"+r)
		}
		for i := 0; i < 20; i++ {
			paths = append(paths, "/"+l+"/products/p"+string(rune('a'+i)), "/"+l+"/articles/a"+string(rune('a'+i)))
		}
	}

	seen := map[string]bool{}
	for _, p := range paths {
		seen[NormalizePath(p)] = true
	}
	if len(seen) > GetExpectedCardinality() {
		t.Errorf("got %d distinct labels, want at most %d: %v", len(seen), GetExpectedCardinality(), seen)
	}
}
