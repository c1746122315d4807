package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// IdentityMiddleware reads the acting user from the X-User header and stores
// it in the request context for audit attribution. Requests without a header
// are still served; handlers fall back to a system identity.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := strings.TrimSpace(c.GetHeader("X-User")); user != "" {
			SetUserIDInContext(c, user)
		}
		c.Next()
	}
}
