package repositories

import (
	"chat-app-server/models"
)

type FileRepository interface {
	Create(file *models.File) error
	FindByID(id uint) (*models.File, error)
}
