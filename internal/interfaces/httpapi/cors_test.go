package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func serveCORS(allowed []string, method, origin string) *httptest.ResponseRecorder {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(method, "/v1/competitions", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	CORS(allowed, next).ServeHTTP(rec, req)
	return rec
}

func TestCORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
		wantVary   bool
	}{
		{name: "listed origin", allowed: []string{"https://futball.example.com"}, method: http.MethodGet, origin: "https://futball.example.com", wantStatus: http.StatusOK, wantOrigin: "https://futball.example.com", wantVary: true},
		{name: "wildcard preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: "https://futball.example.com", wantStatus: http.StatusNoContent, wantOrigin: "*"},
		{name: "unlisted origin", allowed: []string{"https://allowed.example.com"}, method: http.MethodGet, origin: "https://other.example.com", wantStatus: http.StatusOK},
		{name: "blank entries ignored", allowed: []string{" ", ""}, method: http.MethodGet, origin: "https://futball.example.com", wantStatus: http.StatusOK},
		{name: "no origin header", allowed: []string{"*"}, method: http.MethodOptions, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveCORS(tt.allowed, tt.method, tt.origin)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantVary, rec.Header().Get("Vary") == "Origin")
			if tt.wantOrigin != "" {
				assert.Equal(t, corsMethods, rec.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}
