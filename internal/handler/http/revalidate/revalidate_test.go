package revalidate_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpH "egreen-site/internal/handler/http"
	"egreen-site/internal/handler/http/revalidate"
	"egreen-site/internal/infra/catalogapi"
	"egreen-site/internal/infra/catalogapi/catalogapitest"
	"egreen-site/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCache struct {
	calls [][]catalogapi.Tag
}

func (c *recordingCache) Invalidate(tags ...catalogapi.Tag) int {
	c.calls = append(c.calls, tags)
	return len(tags)
}

const token = "s3cret-token"

func do(h http.Handler, target, tok string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, nil)
	if tok != "" {
		req.Header.Set(httpH.RevalidateTokenHeader, tok)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Auth(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		wantCode int
	}{
		{name: "missing token", token: "", wantCode: http.StatusUnauthorized},
		{name: "wrong token", token: "guess", wantCode: http.StatusForbidden},
		{name: "valid token", token: token, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := &recordingCache{}
			h := revalidate.Handler{Cache: cache, Token: token}

			rec := do(h, "/revalidate?tag=Products", tt.token)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode != http.StatusOK {
				assert.Empty(t, cache.calls)
			}
		})
	}
}

func TestHandler_Tags(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   []catalogapi.Tag
	}{
		{name: "single tag", target: "/revalidate?tag=products", want: []catalogapi.Tag{catalogapi.TagProducts}},
		{name: "comma separated", target: "/revalidate?tag=Articles,Categories", want: []catalogapi.Tag{catalogapi.TagArticles, catalogapi.TagCategories}},
		{name: "repeated and duplicated", target: "/revalidate?tag=Articles&tag=articles", want: []catalogapi.Tag{catalogapi.TagArticles}},
		{name: "no tag means all", target: "/revalidate", want: catalogapi.AllTags()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := &recordingCache{}
			h := revalidate.Handler{Cache: cache, Token: token}

			rec := do(h, tt.target, token)

			require.Equal(t, http.StatusOK, rec.Code)
			require.Len(t, cache.calls, 1)
			assert.Equal(t, tt.want, cache.calls[0])

			var body revalidate.Response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.want, body.Tags)
			assert.Equal(t, len(tt.want), body.Removed)
		})
	}
}

func TestHandler_UnknownTag(t *testing.T) {
	cache := &recordingCache{}
	h := revalidate.Handler{Cache: cache, Token: token}

	rec := do(h, "/revalidate?tag=Users", token)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Users")
	assert.Empty(t, cache.calls)
}

func TestRegister(t *testing.T) {
	t.Run("disabled without token", func(t *testing.T) {
		mux := http.NewServeMux()
		revalidate.Register(mux, &recordingCache{}, "", nil)

		rec := do(mux, "/revalidate", token)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("post only", func(t *testing.T) {
		mux := http.NewServeMux()
		revalidate.Register(mux, &recordingCache{}, token, nil)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/revalidate", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestHandler_InvalidatesRealCache(t *testing.T) {
	cache := catalogapi.NewCache()
	_, _, err := cache.Do(t.Context(), "product", []catalogapi.Tag{catalogapi.TagProducts}, func(_ context.Context) ([]byte, error) {
		return []byte("x"), nil
	})
	require.NoError(t, err)
	h := revalidate.Handler{Cache: cache, Token: token}

	rec := do(h, "/revalidate?tag=Products", token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, cache.Len())
}

func TestHandler_InvalidatesThroughClient(t *testing.T) {
	srv := catalogapitest.NewServer()
	t.Cleanup(srv.Close)
	client, err := catalogapi.New(catalogapi.Config{BaseURL: srv.URL})
	require.NoError(t, err)
	_, err = client.ListProducts(t.Context(), catalogapi.Query{Page: 1})
	require.NoError(t, err)
	before := testutil.ToFloat64(metrics.CacheInvalidationsTotal.WithLabelValues("Products"))

	rec := do(revalidate.Handler{Cache: client, Token: token}, "/revalidate?tag=Products", token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, client.Cache().Len())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CacheInvalidationsTotal.WithLabelValues("Products")))

	_, err = client.ListProducts(t.Context(), catalogapi.Query{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, srv.Calls("/product?page=1"))
}
