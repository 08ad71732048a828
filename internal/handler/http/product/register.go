// Package product serves the localized product listing and detail routes.
package product

import (
	"context"
	"log/slog"
	"net/http"

	"egreen-site/internal/common/pagination"
	"egreen-site/internal/domain/entity"
	"egreen-site/internal/i18n"
	prodUC "egreen-site/internal/usecase/product"
)

// Service is the product use case the handlers call.
type Service interface {
	List(ctx context.Context, locale entity.Locale, page, limit int, category string) (*prodUC.ListView, error)
	Get(ctx context.Context, locale entity.Locale, id string) (*prodUC.DetailView, error)
}

// Register registers the product routes with mux.
func Register(mux *http.ServeMux, svc Service, locales *i18n.Resolver, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /{locale}/products", ListHandler{
		Svc:           svc,
		Locales:       locales,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /{locale}/products/{id}", GetHandler{
		Svc:     svc,
		Locales: locales,
		Logger:  logger,
	})
}
