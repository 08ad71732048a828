// Package locale resolves the {locale} path segment of storefront routes.
package locale

import (
	"net/http"
	"strconv"

	"egreen-site/internal/domain/entity"
	"egreen-site/internal/handler/http/respond"
	"egreen-site/internal/i18n"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PathValue is the name of the locale wildcard in route patterns.
const PathValue = "locale"

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "site_locale_requests_total",
		Help: "Total number of localized requests by locale",
	},
	[]string{"locale", "supported"},
)

// FromRequest returns the supported locale named by the request path.
// Codes are normalised ("EN", "fr-FR" and "ar_EG" are accepted).
func FromRequest(r *http.Request, res *i18n.Resolver) (entity.Locale, bool) {
	l, ok := res.Parse(r.PathValue(PathValue))
	label := string(l)
	if !ok {
		label = "other"
	}
	requestsTotal.WithLabelValues(label, strconv.FormatBool(ok)).Inc()
	return l, ok
}

// NotFoundBody is the 404 answer for an unsupported locale.
type NotFoundBody struct {
	Error   string          `json:"error"`
	Locales []entity.Locale `json:"locales"`
}

// NotFound answers 404 and lists the supported locales.
func NotFound(w http.ResponseWriter, res *i18n.Resolver) {
	respond.JSON(w, http.StatusNotFound, NotFoundBody{
		Error:   "locale not supported",
		Locales: res.Supported(),
	})
}
