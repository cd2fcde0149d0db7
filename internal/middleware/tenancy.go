package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	tenantIDKey = contextKey("tenantID")
	userIDKey   = contextKey("userID")

	// TenantHeader carries the tenant identifier on every API request.
	TenantHeader = "X-Tenant-ID"
	// UserHeader optionally identifies the acting user for audit fields.
	UserHeader = "X-User-ID"

	// SystemUserID attributes changes made by background jobs.
	SystemUserID = "system"
)

// TenancyMiddleware requires the tenant header and stores the tenant and
// acting user in the request context.
func TenancyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(TenantHeader)
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + TenantHeader + " header"})
			return
		}

		userID := c.GetHeader(UserHeader)
		if userID == "" {
			userID = SystemUserID
		}

		c.Set(string(tenantIDKey), tenantID)
		c.Set(string(userIDKey), userID)

		ctx := context.WithValue(c.Request.Context(), tenantIDKey, tenantID)
		ctx = context.WithValue(ctx, userIDKey, userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetTenantIDFromContext retrieves the tenant ID set by TenancyMiddleware.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get(string(tenantIDKey))
	if !exists {
		return "", false
	}
	tenantID, ok := v.(string)
	return tenantID, ok
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get(string(userIDKey))
	if !exists {
		return "", false
	}
	userID, ok := v.(string)
	return userID, ok
}
