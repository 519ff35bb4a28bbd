package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chat-app-server/middlewares"
	"chat-app-server/models"
	"chat-app-server/services"
)

var chatRoomService *services.ChatRoomService

func SetChatRoomService(service *services.ChatRoomService) {
	chatRoomService = service
}

// ResolvePersonalChatRoom returns the one-to-one room for a pair of users,
// creating it if it does not exist yet.
func ResolvePersonalChatRoom(c *gin.Context) {
	var input struct {
		ParticipantIDs []uint `json:"participant_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(input.ParticipantIDs) != 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly two participant ids are required"})
		return
	}

	room, err := chatRoomService.ResolvePersonal(input.ParticipantIDs[0], input.ParticipantIDs[1])
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": models.ToChatRoomView(room)})
}

// ResolveGroupChatRoom returns the room backing a group, creating it if it
// does not exist yet.
func ResolveGroupChatRoom(c *gin.Context) {
	var input struct {
		GroupID uint `json:"group_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := chatRoomService.ResolveGroup(input.GroupID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": models.ToChatRoomView(room)})
}

// ListChatRooms returns the caller's rooms, most recently active first.
func ListChatRooms(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rooms, err := chatRoomService.RoomsForUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]models.ChatRoomView, 0, len(rooms))
	for i := range rooms {
		views = append(views, models.ToChatRoomView(&rooms[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": views})
}

// GetChatRoom returns a single room by id.
func GetChatRoom(c *gin.Context) {
	room, err := chatRoomService.GetByID(c.Param("chatroom_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": models.ToChatRoomView(room)})
}

// GetChatRoomMessages returns the room's history in creation order.
// Soft-deleted messages are hidden unless include_deleted=true.
func GetChatRoomMessages(c *gin.Context) {
	includeDeleted := c.Query("include_deleted") == "true"

	messages, err := messageService.List(c.Param("chatroom_id"), includeDeleted)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": messages})
}
