package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zaikahouse/storefront/models"
	"github.com/zaikahouse/storefront/utils"
)

// RequireOwner aborts unless the authenticated caller is the owner.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		if role != models.RoleOwner {
			utils.RespondError(c, http.StatusForbidden, fmt.Errorf("owner access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
