package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys for tenant information
const (
	TenantIDKey     = "tenant_id"
	TenantHeaderKey = "X-Tenant-ID"
)

// TenantConfig holds configuration for the tenant middleware
type TenantConfig struct {
	// DefaultTenantID is used when the header is absent. Empty means
	// the header is mandatory.
	DefaultTenantID string
	// SkipPaths are paths that don't require tenant context
	SkipPaths []string
}

// Tenant extracts the tenant ID from the X-Tenant-ID header and stores
// it in the request context. Requests without a resolvable tenant are
// rejected.
func Tenant(cfg TenantConfig) gin.HandlerFunc {
	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		raw := c.GetHeader(TenantHeaderKey)
		if raw == "" {
			raw = cfg.DefaultTenantID
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   gin.H{"code": "ERR_BAD_REQUEST", "message": "Missing X-Tenant-ID header"},
			})
			return
		}

		tenantID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   gin.H{"code": "ERR_BAD_REQUEST", "message": "Invalid X-Tenant-ID header"},
			})
			return
		}

		c.Set(TenantIDKey, tenantID)
		c.Next()
	}
}

// GetTenantID returns the tenant ID stored by the Tenant middleware
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(TenantIDKey)
	if !exists {
		return uuid.Nil, false
	}
	tenantID, ok := value.(uuid.UUID)
	return tenantID, ok
}
