package middleware

import (
	"net/http"
	"strings"
)

const (
	allowMethods = "POST, OPTIONS, GET, PATCH"
	allowHeaders = "Content-Type, Authorization"
)

// CORS answers every response with the allow headers. An empty list or "*"
// allows any origin; otherwise the request Origin is echoed when listed.
// Preflight requests stop here with 200.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	wildcard := len(allowedOrigins) == 0
	originSet := make(map[string]bool)
	for _, origin := range allowedOrigins {
		if origin == "*" {
			wildcard = true
		}
		originSet[strings.TrimSuffix(origin, "/")] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case wildcard:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && originSet[origin]:
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", allowMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowHeaders)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
