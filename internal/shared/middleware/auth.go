package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fishtrade-backend/internal/shared/response"
	"fishtrade-backend/pkg/jwt"
)

// Context keys set by AuthMiddleware for downstream handlers.
const (
	CtxUserID      = "user_id"
	CtxUsername    = "username"
	CtxRole        = "role"
	CtxPermissions = "permissions"
)

// AuthMiddleware validates the Bearer token and injects the caller's
// identity into the gin context. Every failure produces the same
// "Not authenticated" denial: callers must not learn whether the header was
// missing, malformed or expired.
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			denyUnauthenticated(c)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			denyUnauthenticated(c)
			return
		}

		claims, err := manager.ValidateToken(parts[1])
		if err != nil {
			denyUnauthenticated(c)
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			denyUnauthenticated(c)
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxPermissions, claims.Permissions)

		c.Next()
	}
}

func denyUnauthenticated(c *gin.Context) {
	response.Unauthorized(c, "Not authenticated")
	c.Abort()
}

// UserIDFromContext returns the authenticated user's ID, uuid.Nil when the
// request was not authenticated.
func UserIDFromContext(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(CtxUserID); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
