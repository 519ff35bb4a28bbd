package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chat-app-server/middlewares"
	"chat-app-server/services"
)

var fileService *services.FileService

func SetFileService(service *services.FileService) {
	fileService = service
}

// RegisterFile records metadata for an already uploaded file so messages
// can attach it by id.
func RegisterFile(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input struct {
		URL      string `json:"url" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Size     int64  `json:"size"`
		MimeType string `json:"mime_type"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := fileService.Register(input.URL, input.Name, input.MimeType, input.Size, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": file})
}

func GetFile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("file_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file id"})
		return
	}

	file, err2 := fileService.Get(uint(id))
	if err2 != nil {
		respondError(c, err2)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": file})
}
