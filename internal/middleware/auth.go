package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gasanadj/demo-rise360-backend/internal/auth"
	"github.com/gasanadj/demo-rise360-backend/pkg/response"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// AuthMiddleware guards HTTP routes with bearer-token authentication.
type AuthMiddleware struct {
	tokens *auth.TokenManager
}

func NewAuthMiddleware(tokens *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth rejects requests without a valid bearer token and stores
// the caller's identity on the gin context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			response.Unauthorized(c, "missing bearer token")
			c.Abort()
			return
		}

		claims, err := m.tokens.Verify(token)
		if err != nil || claims == nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole additionally restricts a route to one role.
func (m *AuthMiddleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != role {
			response.Forbidden(c, "insufficient role")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user's id, or "" when unauthenticated.
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// GetRole returns the authenticated user's role, or "" when unauthenticated.
func GetRole(c *gin.Context) string {
	return c.GetString(ContextRole)
}
