package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTenantRouter(cfg TenantConfig) (*gin.Engine, *uuid.UUID) {
	var captured uuid.UUID
	r := gin.New()
	r.Use(Tenant(cfg))
	r.GET("/resource", func(c *gin.Context) {
		if id, ok := GetTenantID(c); ok {
			captured = id
		}
		c.Status(http.StatusOK)
	})
	r.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, &captured
}

func TestTenantMiddleware(t *testing.T) {
	tenantID := uuid.New()

	t.Run("extracts tenant from header", func(t *testing.T) {
		r, captured := newTenantRouter(TenantConfig{})

		req := httptest.NewRequest("GET", "/resource", nil)
		req.Header.Set(TenantHeaderKey, tenantID.String())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, tenantID, *captured)
	})

	t.Run("falls back to configured default", func(t *testing.T) {
		defaultID := uuid.New()
		r, captured := newTenantRouter(TenantConfig{DefaultTenantID: defaultID.String()})

		req := httptest.NewRequest("GET", "/resource", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, defaultID, *captured)
	})

	t.Run("rejects missing tenant without default", func(t *testing.T) {
		r, _ := newTenantRouter(TenantConfig{})

		req := httptest.NewRequest("GET", "/resource", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed tenant ID", func(t *testing.T) {
		r, _ := newTenantRouter(TenantConfig{})

		req := httptest.NewRequest("GET", "/resource", nil)
		req.Header.Set(TenantHeaderKey, "not-a-uuid")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("skips configured paths", func(t *testing.T) {
		r, _ := newTenantRouter(TenantConfig{SkipPaths: []string{"/health"}})

		req := httptest.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	t.Run("generates an ID when absent", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.NotEmpty(t, w.Body.String())
		assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))
	})

	t.Run("propagates a caller-supplied ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Request-ID", "caller-id")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "caller-id", w.Body.String())
		assert.Equal(t, "caller-id", w.Header().Get("X-Request-ID"))
	})
}

func TestCORSWithConfig(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://app.example.com"}

	r := gin.New()
	r.Use(CORSWithConfig(cfg))
	r.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("allows whitelisted origin", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("omits headers for unknown origin", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("answers preflight with 204", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
