package apiHttp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	internalV1 "github.com/clinickart/backend/internal/api/http/internal/v1"
	"github.com/clinickart/backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corsRouter(origins ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(corsMiddleware(origins))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func preflight(router *gin.Engine, method string, origin string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/ping", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestCORS_ListedOriginGetsCredentials(t *testing.T) {
	router := corsRouter("https://app.clinickart.test")

	w := preflight(router, http.MethodGet, "https://app.clinickart.test")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.clinickart.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = preflight(router, http.MethodGet, "https://evil.test")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_WildcardNeverAllowsCredentials(t *testing.T) {
	router := corsRouter("*")

	w := preflight(router, http.MethodGet, "https://evil.test")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))

	w = preflight(router, http.MethodOptions, "https://evil.test")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_WildcardKeepsCredentialsForListedOrigins(t *testing.T) {
	router := corsRouter("*", "https://app.clinickart.test")

	w := preflight(router, http.MethodGet, "https://app.clinickart.test")
	assert.Equal(t, "https://app.clinickart.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestInit_RateLimitUsesErrorEnvelope(t *testing.T) {
	cfg := &config.Config{}
	cfg.Limiter = config.Limiter{RPS: 1, Burst: 1, TTL: time.Minute}

	router := NewHandlers(nil, cfg).Init(cfg)

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
		req.RemoteAddr = "192.0.2.7:4321"
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNotFound, do().Code)

	w := do()
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	var body internalV1.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, http.StatusTooManyRequests, body.StatusCode)
	assert.EqualValues(t, internalV1.TooManyRequestsCode, body.ErrorCode)
	assert.Equal(t, 1, body.RetryAfter)
}
