package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chat-app-server/services"
)

var userService *services.UserService

func SetUserService(service *services.UserService) {
	userService = service
}

// GetUser returns a user profile with the live presence status.
func GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err2 := userService.Get(uint(id))
	if err2 != nil {
		respondError(c, err2)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}
