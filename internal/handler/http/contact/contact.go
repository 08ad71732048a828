// Package contact serves the contact form submission endpoint.
package contact

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"egreen-site/internal/domain/entity"
	httpH "egreen-site/internal/handler/http"
	"egreen-site/internal/handler/http/locale"
	"egreen-site/internal/handler/http/respond"
	"egreen-site/internal/i18n"
	"egreen-site/internal/observability/logging"
	contactUC "egreen-site/internal/usecase/contact"
)

// maxFormBytes caps the JSON body of a submission.
const maxFormBytes = 16 << 10

// Submitter is the contact use case.
type Submitter interface {
	Submit(ctx context.Context, f contactUC.Form) (string, error)
}

// Response is the success answer.
type Response struct {
	Message string `json:"message"`
}

// Handler serves POST /{locale}/contact.
type Handler struct {
	Svc     Submitter
	Locales *i18n.Resolver
	Logger  *slog.Logger
}

// Register registers the contact route. A nil limiter disables throttling.
func Register(mux *http.ServeMux, svc Submitter, locales *i18n.Resolver, limiter *httpH.IPRateLimiter, logger *slog.Logger) {
	var h http.Handler = Handler{Svc: svc, Locales: locales, Logger: logger}
	if limiter != nil {
		h = limiter.Limit(h)
	}
	mux.Handle("POST /{locale}/contact", h)
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logging.WithRequestID(ctx, logger)

	loc, ok := locale.FromRequest(r, h.Locales)
	if !ok {
		locale.NotFound(w, h.Locales)
		return
	}

	var form contactUC.Form
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&form); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	msg, err := h.Svc.Submit(ctx, form)
	if err != nil {
		var fe entity.FieldErrors
		if errors.As(err, &fe) {
			logger.Info("Contact form rejected",
				slog.String("locale", loc.String()),
				slog.Int("field_errors", len(fe)))
			respond.FieldErrors(w, fe)
			return
		}
		logger.Error("Failed to submit contact form",
			slog.String("locale", loc.String()),
			slog.String("error", respond.SanitizeError(err)))
		respond.Upstream(w, err)
		return
	}

	logger.Info("Contact form submitted", slog.String("locale", loc.String()))
	respond.JSON(w, http.StatusOK, Response{Message: msg})
}
