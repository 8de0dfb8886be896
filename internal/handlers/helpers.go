package handlers

import (
	"stillpoint/internal/models"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the user loaded into the context by the router's
// UserLoaderMiddleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
