package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chat-app-server/middlewares"
	"chat-app-server/websocket"
)

var wsHub *websocket.Hub

func SetHub(hub *websocket.Hub) {
	wsHub = hub
}

// ServeWs upgrades an authenticated request to a websocket connection.
func ServeWs(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	username := c.GetString("username")

	websocket.ServeWs(wsHub, c.Writer, c.Request, userID, username)
}
