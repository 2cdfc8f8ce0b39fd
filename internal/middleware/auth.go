package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "foodgram/internal/pkg/jwt"
	"foodgram/internal/pkg/response"
)

// RequireAuth rejects requests without a valid Bearer token and stores the
// caller's identity in the gin context under "user_id" and "role".
func RequireAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, jwt)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// OptionalAuth sets the caller's identity when a valid token is present and
// lets anonymous requests pass through untouched.
func OptionalAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c, jwt); ok {
			c.Set("user_id", claims.UserID)
			c.Set("role", claims.Role)
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context, jwt *jwtsvc.Service) (*jwtsvc.Claims, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return nil, false
	}

	tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if tokenStr == "" {
		return nil, false
	}

	claims, err := jwt.ValidateToken(tokenStr)
	if err != nil {
		return nil, false
	}
	return claims, true
}
