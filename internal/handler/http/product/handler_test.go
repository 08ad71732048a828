package product_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"egreen-site/internal/common/pagination"
	"egreen-site/internal/domain/entity"
	"egreen-site/internal/handler/http/product"
	"egreen-site/internal/handler/http/respond"
	"egreen-site/internal/i18n"
	"egreen-site/internal/infra/catalogapi"
	"egreen-site/internal/infra/catalogapi/catalogapitest"
	prodUC "egreen-site/internal/usecase/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ───────── helpers ───────── */

func newMux(t *testing.T) (*http.ServeMux, *catalogapitest.Server) {
	t.Helper()
	srv := catalogapitest.NewServer()
	t.Cleanup(srv.Close)
	client, err := catalogapi.New(catalogapi.Config{BaseURL: srv.URL})
	require.NoError(t, err)

	locales := i18n.MustNewResolver(i18n.DefaultConfig())
	svc := &prodUC.Service{API: client, Locales: locales, PageSize: 10}

	mux := http.NewServeMux()
	product.Register(mux, svc, locales, pagination.DefaultConfig(), nil)
	return mux, srv
}

func get(mux http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

/* ───────── list ───────── */

func TestListHandler_FirstPage(t *testing.T) {
	mux, _ := newMux(t)

	rec := get(mux, "/en/products")

	require.Equal(t, http.StatusOK, rec.Code)
	var view prodUC.ListView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Len(t, view.Products, 10)
	assert.Equal(t, "Product 1", view.Products[0].Name)
	assert.Equal(t, 1, view.Pagination.CurrentPage)
	assert.Equal(t, 5, view.Pagination.TotalPages)
	assert.Len(t, view.Categories, 3)
	assert.Equal(t, "ltr", view.Direction)
}

func TestListHandler_CategoryAndPage(t *testing.T) {
	mux, _ := newMux(t)

	rec := get(mux, "/ar/products?category="+catalogapitest.CategorySeeds+"&page=2")

	require.Equal(t, http.StatusOK, rec.Code)
	var view prodUC.ListView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, "rtl", view.Direction)
	assert.Equal(t, catalogapitest.CategorySeeds, view.SelectedCategory)
	assert.Equal(t, 2, view.Pagination.CurrentPage)
	for _, p := range view.Products {
		assert.Equal(t, "بذور", p.CategoryName)
	}
}

func TestListHandler_PageBeyondRangeIsClamped(t *testing.T) {
	mux, _ := newMux(t)

	rec := get(mux, "/en/products?page=99")

	require.Equal(t, http.StatusOK, rec.Code)
	var view prodUC.ListView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, view.Pagination.TotalPages, view.Pagination.CurrentPage)
	assert.False(t, view.Nav.NextEnabled)
}

func TestListHandler_LimitIsHonoured(t *testing.T) {
	mux, srv := newMux(t)

	rec := get(mux, "/en/products?page=2&limit=5")

	require.Equal(t, http.StatusOK, rec.Code)
	var view prodUC.ListView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Len(t, view.Products, 5)
	assert.Equal(t, "Product 6", view.Products[0].Name)
	assert.Equal(t, 9, view.Pagination.TotalPages)
	assert.Equal(t, 1, srv.Calls("/product?limit=5&page=2"))
}

func TestListHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		fail     bool
		wantCode int
	}{
		{name: "unsupported locale", target: "/de/products", wantCode: http.StatusNotFound},
		{name: "invalid page", target: "/en/products?page=0", wantCode: http.StatusBadRequest},
		{name: "non-numeric page", target: "/en/products?page=two", wantCode: http.StatusBadRequest},
		{name: "limit too large", target: "/en/products?limit=1000", wantCode: http.StatusBadRequest},
		{name: "upstream failure", target: "/en/products", fail: true, wantCode: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, srv := newMux(t)
			if tt.fail {
				srv.FailNext("/product", http.StatusInternalServerError)
			}

			rec := get(mux, tt.target)

			assert.Equal(t, tt.wantCode, rec.Code)
			var body map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
			if tt.fail {
				assert.Equal(t, respond.MsgUpstream, body["error"])
			}
		})
	}
}

/* ───────── detail ───────── */

func TestGetHandler_Success(t *testing.T) {
	mux, _ := newMux(t)

	rec := get(mux, "/fr/products/p04")

	require.Equal(t, http.StatusOK, rec.Code)
	var view prodUC.DetailView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, "p04", view.ID)
	assert.Equal(t, "Produit 4", view.Name)
	// description only exists in English
	assert.Equal(t, "<p>Description 4</p>", view.Description)
	assert.Equal(t, "Engrais", view.CategoryName)
}

func TestGetHandler_NotFound(t *testing.T) {
	mux, _ := newMux(t)

	rec := get(mux, "/ar/products/missing")

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body product.NotFoundBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Product Not Found", body.Error)
	assert.Equal(t, "/ar/products", body.Back)
}

func TestGetHandler_UnsupportedLocale(t *testing.T) {
	mux, srv := newMux(t)

	rec := get(mux, "/de/products/p01")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, srv.TotalCalls())
}

func TestGetHandler_UpstreamFailure(t *testing.T) {
	mux, srv := newMux(t)
	srv.FailNext("/product/p01", http.StatusBadGateway)

	rec := get(mux, "/en/products/p01")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

/* ───────── stubbed service ───────── */

type stubService struct {
	err error
}

func (s stubService) List(context.Context, entity.Locale, int, int, string) (*prodUC.ListView, error) {
	return nil, s.err
}

func (s stubService) Get(context.Context, entity.Locale, string) (*prodUC.DetailView, error) {
	return nil, s.err
}

func TestListHandler_InvalidPageFromService(t *testing.T) {
	h := product.ListHandler{
		Svc:           stubService{err: prodUC.ErrInvalidPage},
		Locales:       i18n.MustNewResolver(i18n.DefaultConfig()),
		PaginationCfg: pagination.DefaultConfig(),
	}
	mux := http.NewServeMux()
	mux.Handle("GET /{locale}/products", h)

	rec := get(mux, "/en/products")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetHandler_UpstreamMessageNotLeaked(t *testing.T) {
	h := product.GetHandler{
		Svc:     stubService{err: errors.New("dial tcp 10.1.2.3:443: connection refused")},
		Locales: i18n.MustNewResolver(i18n.DefaultConfig()),
	}
	mux := http.NewServeMux()
	mux.Handle("GET /{locale}/products/{id}", h)

	rec := get(mux, "/en/products/p01")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.1.2.3")
}
