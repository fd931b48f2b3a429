package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/candango/interpose/testrunner"
	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	cfg := CORSConfig{
		AllowedOrigins:   []string{"https://app.example.com"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           10 * time.Minute,
	}
	h := okPipeline(CORS(cfg))

	t.Run("Preflight from an allowed origin", func(t *testing.T) {
		res, err := testrunner.NewRunner(t).WithHandler(h).
			WithMethod(http.MethodOptions).
			WithHeader("Origin", "https://app.example.com").
			WithHeader("Access-Control-Request-Method", http.MethodPost).
			Run()
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, res.Status)
		assert.Equal(t, "https://app.example.com",
			res.Header.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST",
			res.Header.Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type",
			res.Header.Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "true",
			res.Header.Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "600", res.Header.Get("Access-Control-Max-Age"))
		assert.Empty(t, res.Body, "preflight must not reach the handler")
	})

	t.Run("Preflight from a denied origin", func(t *testing.T) {
		res, err := testrunner.NewRunner(t).WithHandler(h).
			WithMethod(http.MethodOptions).
			WithHeader("Origin", "https://evil.example.com").
			WithHeader("Access-Control-Request-Method", http.MethodPost).
			Run()
		assert.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, res.Status)
	})

	t.Run("Simple request gets allow headers patched", func(t *testing.T) {
		res, err := testrunner.NewRunner(t).WithHandler(h).
			WithHeader("Origin", "https://app.example.com").Get()
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.Status)
		assert.Equal(t, "ok", testrunner.BodyAsString(t, res))
		assert.Equal(t, "https://app.example.com",
			res.Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("Simple request from a denied origin is unpatched", func(t *testing.T) {
		res, err := testrunner.NewRunner(t).WithHandler(h).
			WithHeader("Origin", "https://evil.example.com").Get()
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.Status)
		assert.Empty(t, res.Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("Wildcard origin", func(t *testing.T) {
		wild := okPipeline(CORS(CORSConfig{AllowedOrigins: []string{"*"}}))
		res, err := testrunner.NewRunner(t).WithHandler(wild).
			WithHeader("Origin", "https://anywhere.example.com").Get()
		assert.NoError(t, err)
		assert.Equal(t, "https://anywhere.example.com",
			res.Header.Get("Access-Control-Allow-Origin"))
	})
}
