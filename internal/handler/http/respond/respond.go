// Package respond writes JSON responses for the storefront endpoints.
// Error helpers sanitize messages so upstream details never reach visitors.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"egreen-site/internal/domain/entity"
)

// Generic messages returned in place of internal error details.
const (
	MsgInternal = "internal server error"
	MsgUpstream = "the catalog service is temporarily unavailable"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// ヘッダー送信済みのためログのみ
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// safeWords mark messages that describe the visitor's request rather than
// the server's internals.
var safeWords = []string{
	"required",
	"invalid",
	"not found",
	"not supported",
	"must be",
	"cannot be",
	"too long",
}

// SafeError returns err's message for client errors that look user-facing
// and a generic message otherwise. 5xx details are only logged.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	isSafe := false
	lowerMsg := strings.ToLower(msg)
	for _, safe := range safeWords {
		if strings.Contains(lowerMsg, safe) {
			isSafe = true
			break
		}
	}

	// 500番台は常に内部エラー扱い
	if code >= 500 {
		isSafe = false
	}

	if isSafe {
		JSON(w, code, map[string]string{"error": msg})
		return
	}
	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": MsgInternal})
}

// AppError is an error type that carries a user-facing message.
type AppError struct {
	UserMsg string // Message to display to users
	Err     error  // Internal error (logged for debugging)
	Code    int    // HTTP status code
}

// Error returns the error message, implementing the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given parameters.
func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}

// SafeErrorV2 handles errors with AppError support.
// An AppError answers with its user message and logs the wrapped error;
// anything else falls back to SafeError.
func SafeErrorV2(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			slog.Default().Error("application error",
				slog.String("status", http.StatusText(appErr.Code)),
				slog.Int("code", appErr.Code),
				slog.String("user_message", appErr.UserMsg),
				slog.String("error", SanitizeError(appErr.Err)))
		}
		JSON(w, appErr.Code, map[string]string{"error": appErr.UserMsg})
		return
	}

	SafeError(w, code, err)
}

// Upstream answers 502 with a generic message for a failed catalog API call.
func Upstream(w http.ResponseWriter, err error) {
	SafeErrorV2(w, http.StatusBadGateway, NewAppError(http.StatusBadGateway, MsgUpstream, err))
}

// FieldErrorsBody is the 422 response for a rejected form.
type FieldErrorsBody struct {
	Error  string             `json:"error"`
	Fields entity.FieldErrors `json:"fields"`
}

// FieldErrors answers 422 with the per-field validation messages.
func FieldErrors(w http.ResponseWriter, fe entity.FieldErrors) {
	JSON(w, http.StatusUnprocessableEntity, FieldErrorsBody{
		Error:  entity.ErrValidationFailed.Error(),
		Fields: fe,
	})
}
