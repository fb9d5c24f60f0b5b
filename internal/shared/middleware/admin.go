package middleware

import (
	"github.com/gin-gonic/gin"

	"smartlibrary-backend/internal/domains/library/model"
	"smartlibrary-backend/internal/shared/response"
)

// AdminMiddleware checks if user has admin role
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Role is set by AuthMiddleware
		role, ok := c.Get(ContextKeyRole)
		if !ok || role != string(model.RoleAdmin) {
			response.Forbidden(c, "Access denied: admin role required")
			return
		}

		c.Next()
	}
}
