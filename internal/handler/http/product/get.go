package product

import (
	"errors"
	"log/slog"
	"net/http"

	"egreen-site/internal/handler/http/locale"
	"egreen-site/internal/handler/http/pathutil"
	"egreen-site/internal/handler/http/respond"
	"egreen-site/internal/i18n"
	"egreen-site/internal/observability/logging"
	prodUC "egreen-site/internal/usecase/product"
)

// NotFoundBody is the 404 answer for an unknown product. Back links to the
// listing in the same locale.
type NotFoundBody struct {
	Error string `json:"error"`
	Back  string `json:"back"`
}

// GetHandler serves GET /{locale}/products/{id}.
type GetHandler struct {
	Svc     Service
	Locales *i18n.Resolver
	Logger  *slog.Logger
}

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	loc, ok := locale.FromRequest(r, h.Locales)
	if !ok {
		locale.NotFound(w, h.Locales)
		return
	}

	notFound := NotFoundBody{Error: "Product Not Found", Back: "/" + loc.String() + "/products"}

	id, err := pathutil.ValidID(r.PathValue("id"))
	if err != nil {
		respond.JSON(w, http.StatusNotFound, notFound)
		return
	}

	view, err := h.Svc.Get(r.Context(), loc, id)
	switch {
	case err == nil:
		respond.JSON(w, http.StatusOK, view)
	case errors.Is(err, prodUC.ErrProductNotFound):
		respond.JSON(w, http.StatusNotFound, notFound)
	default:
		logger := h.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logging.WithRequestID(r.Context(), logger).Error("Failed to get product",
			slog.String("product_id", id),
			slog.String("error", respond.SanitizeError(err)))
		respond.Upstream(w, err)
	}
}
