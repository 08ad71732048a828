package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestInputValidation(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		token      string
		body       string
		wantStatus int
		wantReach  bool
	}{
		{
			name:       "ordinary request",
			target:     "/en/articles?q=compost",
			wantStatus: http.StatusOK,
			wantReach:  true,
		},
		{
			name:       "token at limit",
			target:     "/revalidate?tag=products",
			token:      strings.Repeat("t", maxTokenHeaderBytes),
			wantStatus: http.StatusOK,
			wantReach:  true,
		},
		{
			name:       "token too large",
			target:     "/revalidate?tag=products",
			token:      strings.Repeat("t", maxTokenHeaderBytes+1),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "path too long",
			target:     "/en/products/" + strings.Repeat("p", maxPathBytes),
			wantStatus: http.StatusRequestURITooLong,
		},
		{
			name:       "query too long",
			target:     "/en/articles?q=" + strings.Repeat("q", maxQueryBytes),
			wantStatus: http.StatusRequestURITooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			handler := InputValidation()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.token != "" {
				req.Header.Set(RevalidateTokenHeader, tt.token)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if reached != tt.wantReach {
				t.Errorf("handler reached = %v, want %v", reached, tt.wantReach)
			}
		})
	}
}

func TestInputValidation_BodyLimit(t *testing.T) {
	var readErr error
	handler := InputValidation()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	req := httptest.NewRequest(http.MethodPost, "/en/contact", strings.NewReader(strings.Repeat("a", maxBodyBytes+1)))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if readErr == nil {
		t.Error("expected reading an oversized body to fail")
	}
}
