package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"egreen-site/internal/domain/entity"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		data         any
		expectedBody string
	}{
		{
			name:         "map",
			code:         http.StatusOK,
			data:         map[string]string{"message": "success"},
			expectedBody: `{"message":"success"}`,
		},
		{
			name:         "struct",
			code:         http.StatusCreated,
			data:         struct{ ID string }{ID: "p01"},
			expectedBody: `{"ID":"p01"}`,
		},
		{
			name:         "nil",
			code:         http.StatusNoContent,
			data:         nil,
			expectedBody: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSON(w, tt.code, tt.data)

			if w.Code != tt.code {
				t.Errorf("Code = %v, want %v", w.Code, tt.code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %v, want application/json", ct)
			}
			if body := strings.TrimSpace(w.Body.String()); body != tt.expectedBody {
				t.Errorf("Body = %v, want %v", body, tt.expectedBody)
			}
		})
	}
}

func TestJSON_EncodingError(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, make(chan int))

	if w.Code != http.StatusOK {
		t.Errorf("Code = %v, want %v", w.Code, http.StatusOK)
	}
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		err     error
		wantMsg string
	}{
		{
			name:    "validation message is returned",
			code:    http.StatusBadRequest,
			err:     errors.New("invalid query parameter: page must be a positive integer"),
			wantMsg: "invalid query parameter: page must be a positive integer",
		},
		{
			name:    "not found is returned",
			code:    http.StatusNotFound,
			err:     errors.New("locale not supported"),
			wantMsg: "locale not supported",
		},
		{
			name:    "5xx is always generic",
			code:    http.StatusInternalServerError,
			err:     errors.New("required field missing in upstream payload"),
			wantMsg: MsgInternal,
		},
		{
			name:    "unknown 4xx is generic",
			code:    http.StatusBadRequest,
			err:     errors.New("dial tcp 10.0.0.1:443: connection refused"),
			wantMsg: MsgInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			SafeError(w, tt.code, tt.err)

			if w.Code != tt.code {
				t.Errorf("Code = %v, want %v", w.Code, tt.code)
			}
			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["error"] != tt.wantMsg {
				t.Errorf("error = %q, want %q", body["error"], tt.wantMsg)
			}
		})
	}
}

func TestSafeError_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	SafeError(w, http.StatusBadRequest, nil)

	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}
}

func TestSafeErrorV2_AppError(t *testing.T) {
	inner := errors.New("connect: https://user:pw@api.example.com")
	err := fmt.Errorf("list products: %w", NewAppError(http.StatusConflict, "try again later", inner))

	w := httptest.NewRecorder()
	SafeErrorV2(w, http.StatusInternalServerError, err)

	if w.Code != http.StatusConflict {
		t.Errorf("Code = %v, want %v", w.Code, http.StatusConflict)
	}
	if !strings.Contains(w.Body.String(), "try again later") {
		t.Errorf("Body = %q, want user message", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "pw") {
		t.Errorf("Body leaks internal error: %q", w.Body.String())
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	appErr := NewAppError(http.StatusBadGateway, "msg", inner)

	if !errors.Is(appErr, inner) {
		t.Error("AppError should unwrap to inner error")
	}
	if appErr.Error() != "inner" {
		t.Errorf("Error() = %q, want inner", appErr.Error())
	}
	if NewAppError(http.StatusBadGateway, "msg", nil).Error() != "msg" {
		t.Error("Error() without inner error should return the user message")
	}
}

func TestUpstream(t *testing.T) {
	w := httptest.NewRecorder()
	Upstream(w, errors.New("catalog api server error: status=500: database exploded"))

	if w.Code != http.StatusBadGateway {
		t.Errorf("Code = %v, want %v", w.Code, http.StatusBadGateway)
	}
	if strings.Contains(w.Body.String(), "database") {
		t.Errorf("Body leaks upstream message: %q", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), MsgUpstream) {
		t.Errorf("Body = %q, want generic upstream message", w.Body.String())
	}
}

func TestFieldErrors(t *testing.T) {
	w := httptest.NewRecorder()
	FieldErrors(w, entity.FieldErrors{"name": "Name is required"})

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Code = %v, want %v", w.Code, http.StatusUnprocessableEntity)
	}
	var body FieldErrorsBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Fields["name"] != "Name is required" {
		t.Errorf("fields = %v", body.Fields)
	}
	if body.Error != "validation failed" {
		t.Errorf("error = %q", body.Error)
	}
}
