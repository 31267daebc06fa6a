package middleware

import (
	"net/http"
	"strings"

	"github.com/kartavya2004/retail-billing/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware enforces the bearer-token boundary. A missing token is
// 401; an invalid or expired one is 403.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication token required",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication token required",
			})
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set("enterpriseID", claims.EnterpriseID)
		c.Set("phoneNumber", claims.PhoneNumber)
		c.Next()
	}
}
