package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chat-app-server/middlewares"
	"chat-app-server/services"
)

var groupService *services.GroupService

func SetGroupService(service *services.GroupService) {
	groupService = service
}

func groupIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("group_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return 0, false
	}
	return uint(id), true
}

// CreateGroup creates a group with the caller as its first member.
func CreateGroup(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := groupService.Create(input.Name, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": group})
}

func GetGroup(c *gin.Context) {
	id, ok := groupIDParam(c)
	if !ok {
		return
	}

	group, err := groupService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": group})
}

// AddGroupMember adds a user to the group and its chatroom.
func AddGroupMember(c *gin.Context) {
	id, ok := groupIDParam(c)
	if !ok {
		return
	}

	var input struct {
		UserID uint `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := groupService.AddMember(id, input.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"group_id": id, "user_id": input.UserID}})
}

// RemoveGroupMember removes a user from the group and its chatroom.
func RemoveGroupMember(c *gin.Context) {
	id, ok := groupIDParam(c)
	if !ok {
		return
	}

	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := groupService.RemoveMember(id, uint(userID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"group_id": id, "user_id": uint(userID)}})
}
