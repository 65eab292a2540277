package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reviewpulse/pkg/utils"
)

// JWTAuthMiddleware verifies the bearer token and stashes the caller's
// identity on the context for downstream handlers.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(tokenString, key)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("brand_id", claims.BrandID)
		c.Next()
	}
}

// RoleMiddleware gates a route to the given roles.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
		c.Abort()
	}
}
