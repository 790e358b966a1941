package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/you/blogsvc/domain"
)

// RequireAnyOf loads the authenticated user and passes only when their role
// is in the allow list. The loaded user is attached to the context for
// downstream handlers.
func RequireAnyOf(userRepo domain.UserRepository, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadCurrentUser(c, userRepo)
		if !ok {
			return
		}
		if !slices.Contains(roles, user.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "permission denied",
				"code":    "Error_Unauthorised",
			})
			return
		}
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// DenyAnyOf is the inverse gate: listed roles are rejected, everyone else
// passes with the user attached.
func DenyAnyOf(userRepo domain.UserRepository, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadCurrentUser(c, userRepo)
		if !ok {
			return
		}
		if slices.Contains(roles, user.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "permission denied",
				"code":    "Error_Unauthorised",
			})
			return
		}
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

func loadCurrentUser(c *gin.Context, userRepo domain.UserRepository) (*domain.User, bool) {
	val, exists := c.Get(ContextUserIDKey)
	userID, ok := val.(uint)
	if !exists || !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message": "not authenticated",
			"code":    "Error_Unauthenticated",
		})
		return nil, false
	}

	user, err := userRepo.FindByID(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message": "not authenticated",
			"code":    "Error_Unauthenticated",
		})
		return nil, false
	}
	return user, true
}
