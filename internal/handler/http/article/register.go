// Package article serves the localized article index and article pages.
package article

import (
	"context"
	"log/slog"
	"net/http"

	"egreen-site/internal/domain/entity"
	"egreen-site/internal/i18n"
	artUC "egreen-site/internal/usecase/article"
)

// Service is the article use case the handlers call.
type Service interface {
	List(ctx context.Context, locale entity.Locale, search, category string) (*artUC.ListView, error)
	Get(ctx context.Context, locale entity.Locale, id string) (*artUC.DetailView, error)
}

// Register registers the article routes with mux.
func Register(mux *http.ServeMux, svc Service, locales *i18n.Resolver, logger *slog.Logger) {
	mux.Handle("GET /{locale}/articles", ListHandler{Svc: svc, Locales: locales, Logger: logger})
	mux.Handle("GET /{locale}/articles/{id}", GetHandler{Svc: svc, Locales: locales, Logger: logger})
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}
