package repositories

import (
	"chat-app-server/models"
)

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	// UpdateStatus writes the durable presence projection column.
	UpdateStatus(id uint, status string) error
}
