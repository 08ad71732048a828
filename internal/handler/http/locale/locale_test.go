package locale_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"egreen-site/internal/domain/entity"
	"egreen-site/internal/handler/http/locale"
	"egreen-site/internal/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRequest(t *testing.T) {
	res := i18n.MustNewResolver(i18n.DefaultConfig())

	tests := []struct {
		segment string
		want    entity.Locale
		wantOK  bool
	}{
		{segment: "en", want: entity.LocaleEN, wantOK: true},
		{segment: "ar", want: entity.LocaleAR, wantOK: true},
		{segment: "FR", want: entity.LocaleFR, wantOK: true},
		{segment: "fr-FR", want: entity.LocaleFR, wantOK: true},
		{segment: "de", wantOK: false},
		{segment: "not-a-locale!", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			var (
				got entity.Locale
				ok  bool
			)
			mux := http.NewServeMux()
			mux.HandleFunc("GET /{locale}/products", func(w http.ResponseWriter, r *http.Request) {
				got, ok = locale.FromRequest(r, res)
			})
			mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/"+tt.segment+"/products", nil))

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	res := i18n.MustNewResolver(i18n.DefaultConfig())

	rec := httptest.NewRecorder()
	locale.NotFound(rec, res)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body locale.NotFoundBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "locale not supported", body.Error)
	assert.Equal(t, []entity.Locale{"en", "ar", "fr"}, body.Locales)
}
