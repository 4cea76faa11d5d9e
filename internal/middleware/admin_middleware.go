package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"society-backend-go/internal/core"
	"society-backend-go/internal/models"
)

// AdminMiddleware restricts routes to users whose profile carries the admin
// role. It runs after VerifyToken and reads the role from the user profile
// document, not from token claims, so role changes take effect immediately.
type AdminMiddleware struct {
	userService core.UserService
}

// NewAdminMiddleware creates a new AdminMiddleware instance.
func NewAdminMiddleware(us core.UserService) *AdminMiddleware {
	return &AdminMiddleware{userService: us}
}

// RequireAdmin aborts with 403 unless the authenticated user is an active
// admin. Missing authentication aborts with 401.
func (m *AdminMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
			return
		}

		user, err := m.userService.GetByID(c.Request.Context(), userID.(string))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "User profile not found. Initialize the profile first."})
			return
		}
		if user.Role != models.RoleAdmin || !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "Admin access required"})
			return
		}

		c.Next()
	}
}
