package repositories

import (
	"chat-app-server/models"
)

type GroupRepository interface {
	Create(group *models.Group) error
	// FindByID preloads members; callers rely on the full membership set.
	FindByID(id uint) (*models.Group, error)
	AddMember(groupID uint, user *models.User) error
	RemoveMember(groupID uint, user *models.User) error
}
