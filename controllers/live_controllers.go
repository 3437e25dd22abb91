package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/zaikahouse/storefront/live"
	"github.com/zaikahouse/storefront/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveHandler -> websocket endpoint. Owners receive the kitchen feed,
// customers receive updates for their own orders.
func LiveHandler(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	role := roleInterface.(string)

	if role != models.RoleOwner && role != models.RoleCustomer {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	live.RegisterClient(ws, role, userID)

	// Drain client messages until disconnect.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	live.UnregisterClient(ws)
}
