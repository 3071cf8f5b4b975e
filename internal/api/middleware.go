package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentwheels/car-rental-backend/internal/auth"
	"github.com/rentwheels/car-rental-backend/internal/user"
)

// RequireOwner ensures the authenticated user has the owner role.
// It MUST be used after auth.AuthRequired middleware. The role is read
// from the database rather than the token so a promotion takes effect
// without re-login.
func RequireOwner(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not found"})
			return
		}

		if u.Role != user.RoleOwner {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "not authorized"})
			return
		}

		c.Next()
	}
}
