package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OwnerKey is the context key handlers read the acting owner id from.
const OwnerKey = "owner_id"

// RequireOwner extracts the owner id from the X-User-ID header set by the
// fronting proxy. This service does not authenticate; it trusts the
// upstream to have done so.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetHeader("X-User-ID")
		if ownerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-User-ID header"})
			return
		}
		c.Set(OwnerKey, ownerID)
		c.Next()
	}
}
