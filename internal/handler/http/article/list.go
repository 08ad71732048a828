package article

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"egreen-site/internal/handler/http/locale"
	"egreen-site/internal/handler/http/respond"
	"egreen-site/internal/i18n"
	"egreen-site/internal/observability/logging"
)

// maxSearchRunes bounds the search term.
const maxSearchRunes = 200

// ListHandler serves GET /{locale}/articles?q=&category=.
type ListHandler struct {
	Svc     Service
	Locales *i18n.Resolver
	Logger  *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()
	logger := logging.WithRequestID(ctx, loggerOrDefault(h.Logger))

	loc, ok := locale.FromRequest(r, h.Locales)
	if !ok {
		locale.NotFound(w, h.Locales)
		return
	}

	q := r.URL.Query()
	search := strings.TrimSpace(q.Get("q"))
	if len([]rune(search)) > maxSearchRunes {
		respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "search term too long"})
		return
	}
	category := strings.TrimSpace(q.Get("category"))

	view, err := h.Svc.List(ctx, loc, search, category)
	if err != nil {
		logger.Error("Failed to list articles",
			slog.String("error", respond.SanitizeError(err)))
		respond.Upstream(w, err)
		return
	}

	logger.Info("Article list served",
		slog.String("locale", loc.String()),
		slog.String("search", search),
		slog.String("category", category),
		slog.Int("featured", len(view.Featured)),
		slog.Int("articles", len(view.Articles)),
		slog.Int64("duration_ms", time.Since(startTime).Milliseconds()))
	respond.JSON(w, http.StatusOK, view)
}
