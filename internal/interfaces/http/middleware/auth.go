package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jasmey/backend/internal/infrastructure/auth"
	"github.com/jasmey/backend/internal/interfaces/http/dto"
)

// Auth context keys
const (
	UserIDKey     = "auth_user_id"
	UserNameKey   = "auth_user_name"
	UserRoleKey   = "auth_user_role"
	bearerPrefix  = "Bearer "
	authHeaderKey = "Authorization"
)

// RequireAuth validates the bearer token and stores the caller's identity in
// the gin context
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			code := dto.ErrCodeTokenInvalid
			if err == auth.ErrExpiredToken {
				code = dto.ErrCodeTokenExpired
			}
			abortUnauthorized(c, code, "Token validation failed")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserNameKey, claims.Name)
		c.Set(UserRoleKey, claims.Role)
		c.Next()
	}
}

// RequireAdmin rejects callers whose token lacks the admin role.
// Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserRole(c) != auth.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Admin access required"))
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID, or "" when unauthenticated
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// GetUserRole returns the authenticated user's role, or "" when unauthenticated
func GetUserRole(c *gin.Context) string {
	return c.GetString(UserRoleKey)
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}
