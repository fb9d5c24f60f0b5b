package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"smartlibrary-backend/internal/shared/response"
	"smartlibrary-backend/pkg/jwt"
	"smartlibrary-backend/pkg/logger"
)

// Context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyRole      = "role"
	ContextKeyRequestID = "request_id"
)

// TokenValidator parses session tokens
type TokenValidator interface {
	ValidateSessionToken(tokenString string) (*jwt.Claims, error)
}

// SessionResolver reports who is logged in right now
type SessionResolver interface {
	ActiveSession() (userID, role string, ok bool)
}

// AuthMiddleware verifies the bearer token and that its user still holds
// the active session. Logging out invalidates outstanding tokens.
func AuthMiddleware(tokens TokenValidator, sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract token from "Bearer <token>"
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Unauthorized(c, "invalid authorization header format")
			return
		}

		// 2. Verify JWT
		claims, err := tokens.ValidateSessionToken(parts[1])
		if err != nil {
			logger.Debug("session token rejected", map[string]interface{}{
				"request_id": c.GetString(ContextKeyRequestID),
				"reason":     err.Error(),
			})
			response.Unauthorized(c, "invalid token")
			return
		}

		// 3. Match against the live session
		userID, role, ok := sessions.ActiveSession()
		if !ok || userID != claims.UserID {
			response.Unauthorized(c, "session is no longer active")
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyRole, role)
		c.Next()
	}
}

// GetUserID returns the authenticated user id set by AuthMiddleware
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(ContextKeyUserID)
	return userID, userID != ""
}
