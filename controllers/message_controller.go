package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chat-app-server/middlewares"
	"chat-app-server/services"
)

var messageService *services.MessageService

func SetMessageService(service *services.MessageService) {
	messageService = service
}

func messageIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("message_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return 0, false
	}
	return uint(id), true
}

// SendPersonalMessage stores a one-to-one message and broadcasts it to the
// room's subscribers.
func SendPersonalMessage(c *gin.Context) {
	senderID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input struct {
		ReceiverID uint   `json:"receiver_id" binding:"required"`
		Content    string `json:"content"`
		FileID     *uint  `json:"file_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := messageService.SendPersonal(senderID, input.ReceiverID, input.Content, input.FileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": view})
}

// SendGroupMessage stores a group message and broadcasts it to the room's
// subscribers.
func SendGroupMessage(c *gin.Context) {
	senderID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input struct {
		GroupID uint   `json:"group_id" binding:"required"`
		Content string `json:"content"`
		FileID  *uint  `json:"file_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := messageService.SendGroup(senderID, input.GroupID, input.Content, input.FileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": view})
}

// ReplyToMessage stores a reply to an existing message.
func ReplyToMessage(c *gin.Context) {
	senderID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	targetID, ok := messageIDParam(c)
	if !ok {
		return
	}

	var input struct {
		Content string `json:"content"`
		FileID  *uint  `json:"file_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := messageService.Reply(senderID, targetID, input.Content, input.FileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": view})
}

// ForwardMessage copies an existing message into another chatroom.
func ForwardMessage(c *gin.Context) {
	senderID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	sourceID, ok := messageIDParam(c)
	if !ok {
		return
	}

	var input struct {
		ChatroomID string `json:"chatroom_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := messageService.Forward(sourceID, input.ChatroomID, senderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": view})
}

// GetMessage returns a single message, soft-deleted ones included.
func GetMessage(c *gin.Context) {
	id, ok := messageIDParam(c)
	if !ok {
		return
	}

	view, err := messageService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": view})
}

// UpdateMessageStatus advances a message's delivery state. Repeating the
// current state is a no-op; moving backwards is rejected.
func UpdateMessageStatus(c *gin.Context) {
	id, ok := messageIDParam(c)
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := messageService.UpdateStatus(id, input.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message_id": id, "status": input.Status}})
}

// EditMessage replaces a message's content and stamps the edit time.
func EditMessage(c *gin.Context) {
	id, ok := messageIDParam(c)
	if !ok {
		return
	}

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := messageService.Edit(id, input.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": view})
}

// DeleteMessage soft-deletes a message. The row stays for replies and
// forwards that reference it.
func DeleteMessage(c *gin.Context) {
	id, ok := messageIDParam(c)
	if !ok {
		return
	}

	if err := messageService.SoftDelete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message_id": id, "deleted": true}})
}
