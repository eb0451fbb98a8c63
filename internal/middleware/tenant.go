package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const tenantIDKey = contextKey("tenantID")

// TenantHeader carries the tenant identifier resolved by the upstream
// auth/session layer, which sits outside this service.
const TenantHeader = "X-Tenant-ID"

// TenantMiddleware requires the tenant header on every request and stores
// its value in the request context.
func TenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(TenantHeader)
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + TenantHeader + " header"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), tenantIDKey, tenantID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetTenantFromCtx retrieves the tenant ID from a context. The boolean is
// false when the middleware did not run.
func GetTenantFromCtx(ctx context.Context) (string, bool) {
	tenantID, ok := ctx.Value(tenantIDKey).(string)
	return tenantID, ok && tenantID != ""
}
