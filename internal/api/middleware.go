package api

import (
	"net/http"

	"happythoughts/api/internal/models"

	"github.com/gin-gonic/gin"
)

const userContextKey = "authenticatedUser"

// AuthMiddleware resolves the raw bearer token in the Authorization header
// (no scheme prefix) to a user and attaches it to the context. Anything that
// does not match a stored token short-circuits with 401.
func AuthMiddleware(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")

		user, err := users.UserByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"loggedOut": true})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// currentUser returns the user attached by AuthMiddleware. Only valid on
// routes behind the middleware.
func currentUser(c *gin.Context) *models.User {
	value, _ := c.Get(userContextKey)
	user, _ := value.(*models.User)
	return user
}
