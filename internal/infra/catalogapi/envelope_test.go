package catalogapi

import (
	"encoding/json"
	"testing"
	"time"

	"egreen-site/internal/domain/entity"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireProduct_CategoryForms(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want entity.Category
	}{
		{
			name: "populated category",
			raw:  `{"_id":"p1","category":{"_id":"c1","name":{"en":"Seeds","fr":"Semences"}}}`,
			want: entity.Category{ID: "c1", Name: entity.LocalizedString{"en": "Seeds", "fr": "Semences"}},
		},
		{
			name: "category id only",
			raw:  `{"_id":"p1","category":"c2"}`,
			want: entity.Category{ID: "c2"},
		},
		{
			name: "null category",
			raw:  `{"_id":"p1","category":null}`,
			want: entity.Category{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p wireProduct
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &p))
			if diff := cmp.Diff(tt.want, p.toEntity().Category); diff != "" {
				t.Errorf("category mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLocalized_BareStringAppliesToAllLocales(t *testing.T) {
	var a wireArticle
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"a","author":"Editorial"}`), &a))

	got := a.toEntity().Author
	for _, l := range []entity.Locale{entity.LocaleEN, entity.LocaleAR, entity.LocaleFR} {
		assert.Equal(t, "Editorial", got[l])
	}
}

func TestProductListData_Metadata(t *testing.T) {
	t.Run("synthesised when pagination is absent", func(t *testing.T) {
		d := productListData{Products: make([]wireProduct, 4)}
		m := d.metadata(Query{Page: 3})
		assert.Equal(t, 1, m.CurrentPage)
		assert.Equal(t, 1, m.TotalPages)
		assert.Equal(t, 4, m.Limit)
		assert.Equal(t, int64(4), m.Total)
	})

	t.Run("empty listing still has one page", func(t *testing.T) {
		d := productListData{Products: []wireProduct{}, Pagination: &wirePagination{CurrentPage: 1, TotalPages: 0, Limit: 10}}
		m := d.metadata(Query{})
		assert.Equal(t, 1, m.TotalPages)
	})
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{in: "2024-01-15T10:30:00.000Z", want: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{in: "2024-01-15T10:30:00Z", want: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{in: "2024-01-15", want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{in: "", want: time.Time{}},
		{in: "yesterday", want: time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.True(t, tt.want.Equal(parseTime(tt.in)), "got %v", parseTime(tt.in))
		})
	}
}
