package article

import (
	"errors"
	"log/slog"
	"net/http"

	"egreen-site/internal/handler/http/locale"
	"egreen-site/internal/handler/http/pathutil"
	"egreen-site/internal/handler/http/respond"
	"egreen-site/internal/i18n"
	"egreen-site/internal/observability/logging"
	artUC "egreen-site/internal/usecase/article"
)

// NotFoundBody is the 404 answer for an unknown article.
type NotFoundBody struct {
	Error string `json:"error"`
	Back  string `json:"back"`
}

// GetHandler serves GET /{locale}/articles/{id}.
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

	notFound := NotFoundBody{Error: "Article Not Found", Back: "/" + loc.String() + "/articles"}

	id, err := pathutil.ValidID(r.PathValue("id"))
	if err != nil {
		respond.JSON(w, http.StatusNotFound, notFound)
		return
	}

	view, err := h.Svc.Get(r.Context(), loc, id)
	switch {
	case err == nil:
		respond.JSON(w, http.StatusOK, view)
	case errors.Is(err, artUC.ErrArticleNotFound):
		respond.JSON(w, http.StatusNotFound, notFound)
	default:
		logging.WithRequestID(r.Context(), loggerOrDefault(h.Logger)).Error("Failed to get article",
			slog.String("article_id", id),
			slog.String("error", respond.SanitizeError(err)))
		respond.Upstream(w, err)
	}
}
