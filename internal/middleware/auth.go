package middleware

import (
	"net/http"
	"strings"

	jwtsvc "fdrs/internal/pkg/jwt"
	"fdrs/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the Bearer token and stores user_id and is_admin
// into the gin context for downstream handlers.
func AuthRequired(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing Authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("is_admin", claims.IsAdmin)

		c.Next()
	}
}

// AdminOnly rejects authenticated non-admin callers.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("is_admin")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Privilege not found in token")
			c.Abort()
			return
		}

		if !isAdmin.(bool) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: admin only")
			c.Abort()
			return
		}

		c.Next()
	}
}
