// Package revalidate serves the cache invalidation hook the CMS calls after
// content changes.
package revalidate

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	httpH "egreen-site/internal/handler/http"
	"egreen-site/internal/handler/http/respond"
	"egreen-site/internal/infra/catalogapi"
	"egreen-site/internal/observability/logging"
)

// Invalidator drops cached responses by tag.
type Invalidator interface {
	Invalidate(tags ...catalogapi.Tag) int
}

// Response reports what was invalidated.
type Response struct {
	Tags    []catalogapi.Tag `json:"tags"`
	Removed int              `json:"removed"`
}

// Handler serves POST /revalidate?tag=.
type Handler struct {
	Cache  Invalidator
	Token  string
	Logger *slog.Logger
}

// Register registers the revalidation route. Nothing is registered when
// token is empty.
func Register(mux *http.ServeMux, cache Invalidator, token string, logger *slog.Logger) {
	if token == "" {
		return
	}
	mux.Handle("POST /revalidate", Handler{Cache: cache, Token: token, Logger: logger})
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logging.WithRequestID(r.Context(), logger)

	got := r.Header.Get(httpH.RevalidateTokenHeader)
	if got == "" {
		respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "revalidation token required"})
		return
	}
	if h.Token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(h.Token)) != 1 {
		logger.Warn("Revalidation rejected: bad token")
		respond.JSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		return
	}

	tags, err := parseTags(r.URL.Query()["tag"])
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	removed := h.Cache.Invalidate(tags...)
	logger.Info("Cache revalidated",
		slog.Any("tags", tags),
		slog.Int("removed", removed))
	respond.JSON(w, http.StatusOK, Response{Tags: tags, Removed: removed})
}

// parseTags accepts repeated or comma-separated tag values. No value means
// every tag.
func parseTags(values []string) ([]catalogapi.Tag, error) {
	var tags []catalogapi.Tag
	seen := make(map[catalogapi.Tag]bool)
	for _, v := range values {
		for _, raw := range strings.Split(v, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			t, ok := catalogapi.ParseTag(raw)
			if !ok {
				return nil, errors.New("invalid tag: " + raw + " is not supported")
			}
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	if len(tags) == 0 {
		return catalogapi.AllTags(), nil
	}
	return tags, nil
}
