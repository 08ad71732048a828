// Package category serves the localized category list used by the product
// filter.
package category

import (
	"context"
	"log/slog"
	"net/http"

	"egreen-site/internal/domain/entity"
	"egreen-site/internal/handler/http/locale"
	"egreen-site/internal/handler/http/respond"
	"egreen-site/internal/i18n"
	"egreen-site/internal/observability/logging"
	prodUC "egreen-site/internal/usecase/product"
)

// Lister returns the categories for a locale.
type Lister interface {
	Categories(ctx context.Context, locale entity.Locale) ([]prodUC.CategoryOption, error)
}

// Response is the body of GET /{locale}/categories.
type Response struct {
	Locale     entity.Locale           `json:"locale"`
	Direction  string                  `json:"dir"`
	Categories []prodUC.CategoryOption `json:"categories"`
}

// ListHandler serves GET /{locale}/categories.
type ListHandler struct {
	Svc     Lister
	Locales *i18n.Resolver
	Logger  *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	loc, ok := locale.FromRequest(r, h.Locales)
	if !ok {
		locale.NotFound(w, h.Locales)
		return
	}

	cats, err := h.Svc.Categories(r.Context(), loc)
	if err != nil {
		logger := h.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logging.WithRequestID(r.Context(), logger).Error("Failed to list categories",
			slog.String("error", respond.SanitizeError(err)))
		respond.Upstream(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, Response{
		Locale:     loc,
		Direction:  h.Locales.Direction(loc),
		Categories: cats,
	})
}

// Register registers the category route with mux.
func Register(mux *http.ServeMux, svc Lister, locales *i18n.Resolver, logger *slog.Logger) {
	mux.Handle("GET /{locale}/categories", ListHandler{Svc: svc, Locales: locales, Logger: logger})
}
