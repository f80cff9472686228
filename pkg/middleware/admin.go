package middleware

import (
	"net/http"

	"github.com/Saurav-Paul/drop/pkg/auth"

	"github.com/gin-gonic/gin"
)

// RequireAdmin guards the management endpoints. It consumes the same
// capability check the upload path threads through as a boolean
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Admin access required",
			})
			return
		}

		c.Next()
	}
}
