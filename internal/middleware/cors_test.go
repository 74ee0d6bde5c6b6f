package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"contact-service/internal/middleware"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	t.Run("Wildcard", func(t *testing.T) {
		called = false
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/prod/contact", nil)
		req.Header.Set("Origin", "https://example.com")

		middleware.CORS([]string{"*"})(next).ServeHTTP(w, req)

		assert.True(t, called)
		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("Preflight", func(t *testing.T) {
		called = false
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/prod/contact", nil)

		middleware.CORS([]string{"*"})(next).ServeHTTP(w, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("ListedOrigin", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/prod/contact", nil)
		req.Header.Set("Origin", "https://site.example")

		middleware.CORS([]string{"https://site.example/"})(next).ServeHTTP(w, req)

		assert.Equal(t, "https://site.example", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("UnlistedOrigin", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/prod/contact", nil)
		req.Header.Set("Origin", "https://evil.example")

		middleware.CORS([]string{"https://site.example"})(next).ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
