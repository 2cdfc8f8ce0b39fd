package middleware

import (
	"github.com/gin-gonic/gin"

	"foodgram/internal/domain"
)

// Viewer extracts the requester identity set by RequireAuth/OptionalAuth.
// Anonymous requests yield the zero Viewer.
func Viewer(c *gin.Context) domain.Viewer {
	id := c.GetInt64("user_id")
	if id == 0 {
		return domain.Viewer{}
	}
	return domain.Viewer{
		ID:            id,
		Authenticated: true,
		Admin:         c.GetString("role") == string(domain.RoleAdmin),
	}
}
