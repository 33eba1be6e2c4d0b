package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		preflight  bool
		wantStatus int
		wantAllow  string
	}{
		{"allowed simple request", []string{"http://localhost:5173/"}, http.MethodGet, "http://localhost:5173", false, http.StatusOK, "http://localhost:5173"},
		{"unknown origin", []string{"http://localhost:5173"}, http.MethodGet, "http://evil.test", false, http.StatusOK, ""},
		{"preflight allowed", []string{"http://localhost:5173"}, http.MethodOptions, "http://localhost:5173", true, http.StatusNoContent, "http://localhost:5173"},
		{"preflight unknown", []string{"http://localhost:5173"}, http.MethodOptions, "http://evil.test", true, http.StatusNoContent, ""},
		{"wildcard", []string{"*"}, http.MethodGet, "http://anything.test", false, http.StatusOK, "http://anything.test"},
		{"no origin header", []string{"*"}, http.MethodGet, "", false, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/projects", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rr := httptest.NewRecorder()
			CORS(tt.allowed, next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllow, rr.Header().Get("Access-Control-Allow-Origin"))
			if tt.preflight && tt.wantAllow != "" {
				assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "X-Request-ID")
			}
		})
	}
}
