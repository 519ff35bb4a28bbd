package impl

import (
	"chat-app-server/models"

	"gorm.io/gorm"
)

type GroupRepositoryImpl struct {
	DB *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepositoryImpl {
	return &GroupRepositoryImpl{DB: db}
}

func (r *GroupRepositoryImpl) Create(group *models.Group) error {
	return r.DB.Create(group).Error
}

func (r *GroupRepositoryImpl) FindByID(id uint) (*models.Group, error) {
	var group models.Group
	if err := r.DB.Preload("Members").First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *GroupRepositoryImpl) AddMember(groupID uint, user *models.User) error {
	return r.DB.Model(&models.Group{ID: groupID}).
		Association("Members").Append(user)
}

func (r *GroupRepositoryImpl) RemoveMember(groupID uint, user *models.User) error {
	return r.DB.Model(&models.Group{ID: groupID}).
		Association("Members").Delete(user)
}
