package main

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"egreen-site/internal/common/pagination"
	"egreen-site/internal/i18n"
	"egreen-site/internal/infra/catalogapi"
	"egreen-site/internal/infra/catalogapi/catalogapitest"
	"egreen-site/internal/usecase/catalog"
)

func newTestREPL(t *testing.T, locale string) (*repl, *bytes.Buffer, *catalogapitest.Server) {
	t.Helper()
	srv := catalogapitest.NewServer()
	t.Cleanup(srv.Close)

	client, err := catalogapi.New(catalogapi.Config{BaseURL: srv.URL})
	require.NoError(t, err)
	resolver := i18n.MustNewResolver(i18n.DefaultConfig())
	loc, ok := resolver.Parse(locale)
	require.True(t, ok)

	var out bytes.Buffer
	return &repl{
		browser:  catalog.NewBrowser(client, 10, ""),
		resolver: resolver,
		locale:   loc,
		out:      &out,
	}, &out, srv
}

func TestREPL_BrowsesPages(t *testing.T) {
	r, out, _ := newTestREPL(t, "en")

	err := r.run(t.Context(), strings.NewReader("next\npage 5\nquit\n"))
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "all categories, page 1 of 5, 45 products")
	assert.Contains(t, got, "p01")
	assert.Contains(t, got, "Product 1 ")
	assert.Contains(t, got, "page 2 of 5")
	assert.Contains(t, got, "page 5 of 5")
	assert.Contains(t, got, "p45")
}

func TestREPL_CategoryFilterAndLocale(t *testing.T) {
	r, out, _ := newTestREPL(t, "fr")

	err := r.run(t.Context(), strings.NewReader("category "+catalogapitest.CategorySeeds+"\nq\n"))
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "category "+catalogapitest.CategorySeeds+", page 1 of 2, 15 products")
	assert.Contains(t, got, "Produit 3")
	assert.Contains(t, got, "Semences")
}

func TestREPL_OutOfRangeAndBadInput(t *testing.T) {
	r, out, srv := newTestREPL(t, "en")

	err := r.run(t.Context(), strings.NewReader("prev\npage x\nfrobnicate\n"))
	require.NoError(t, err, "EOF ends the session")

	got := out.String()
	assert.Contains(t, got, "page out of range")
	assert.Contains(t, got, `page: "x" is not a number`)
	assert.Contains(t, got, `unknown command "frobnicate"`)
	assert.Equal(t, 1, srv.TotalCalls(), "only the initial load reaches the API")
}

func TestREPL_ErrorThenRetry(t *testing.T) {
	r, out, srv := newTestREPL(t, "en")
	srv.FailNext("/product", http.StatusInternalServerError)

	err := r.run(t.Context(), strings.NewReader("retry\nquit\n"))
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "error:")
	assert.Contains(t, got, "type retry")
	assert.Contains(t, got, "page 1 of 5")
}

func TestFormatNav(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    string
	}{
		{"first page", 1, 5, "  [1] 2 … 5 >"},
		{"middle page", 5, 10, "< 1 … 4 [5] 6 … 10 >"},
		{"last page", 3, 3, "< 1 2 [3]"},
		{"single page", 1, 1, "  [1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatNav(pagination.Buttons(tt.current, tt.total), pagination.NavFor(tt.current, tt.total))
			assert.Equal(t, tt.want, got)
		})
	}
}
