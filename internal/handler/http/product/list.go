package product

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"egreen-site/internal/common/pagination"
	"egreen-site/internal/handler/http/locale"
	"egreen-site/internal/handler/http/requestid"
	"egreen-site/internal/handler/http/respond"
	"egreen-site/internal/i18n"
	"egreen-site/internal/observability/logging"
	prodUC "egreen-site/internal/usecase/product"
)

// ListHandler serves GET /{locale}/products?page=&limit=&category=.
type ListHandler struct {
	Svc           Service
	Locales       *i18n.Resolver
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()
	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.logger())

	loc, ok := locale.FromRequest(r, h.Locales)
	if !ok {
		locale.NotFound(w, h.Locales)
		return
	}

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("Invalid pagination parameters", slog.String("error", err.Error()))
		pagination.RecordError("validation")
		pagination.RecordRequest("products", http.StatusBadRequest, params.Page)
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	pagination.LogRequest(logger, reqID, params)

	view, err := h.Svc.List(ctx, loc, params.Page, params.Limit, params.Category)
	if err != nil {
		if errors.Is(err, prodUC.ErrInvalidPage) {
			pagination.RecordError("validation")
			pagination.RecordRequest("products", http.StatusBadRequest, params.Page)
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		logger.Error("Failed to list products",
			slog.Int("page", params.Page),
			slog.String("category", params.Category),
			slog.String("error", respond.SanitizeError(err)))
		pagination.RecordError("upstream")
		pagination.RecordRequest("products", http.StatusBadGateway, params.Page)
		respond.Upstream(w, err)
		return
	}

	pagination.RecordRequest("products", http.StatusOK, params.Page)
	pagination.LogResponse(logger, reqID, params, view.Pagination, len(view.Products), time.Since(startTime))
	respond.JSON(w, http.StatusOK, view)
}

func (h ListHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
