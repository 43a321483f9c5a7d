package httpapi

import (
	"net/http"
	"strings"
)

const (
	corsMethods = "GET,OPTIONS"
	corsHeaders = "Content-Type,Accept"
)

// corsPolicy answers which origins may read responses. "*" admits all.
type corsPolicy struct {
	anyOrigin bool
	origins   map[string]struct{}
}

func newCORSPolicy(allowed []string) corsPolicy {
	p := corsPolicy{origins: make(map[string]struct{}, len(allowed))}
	for _, origin := range allowed {
		switch origin = strings.TrimSpace(origin); origin {
		case "":
		case "*":
			p.anyOrigin = true
		default:
			p.origins[origin] = struct{}{}
		}
	}
	return p
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin.
func (p corsPolicy) allowOrigin(origin string) (string, bool) {
	if p.anyOrigin {
		return "*", true
	}
	_, ok := p.origins[origin]
	return origin, ok
}

func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	policy := newCORSPolicy(allowedOrigins)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		if value, ok := policy.allowOrigin(origin); ok {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", value)
			if value != "*" {
				h.Add("Vary", "Origin")
			}
			h.Set("Access-Control-Allow-Methods", corsMethods)
			h.Set("Access-Control-Allow-Headers", corsHeaders)
			h.Set("Access-Control-Max-Age", "600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
