package impl

import (
	"chat-app-server/models"

	"gorm.io/gorm"
)

type FileRepositoryImpl struct {
	DB *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepositoryImpl {
	return &FileRepositoryImpl{DB: db}
}

func (r *FileRepositoryImpl) Create(file *models.File) error {
	return r.DB.Create(file).Error
}

func (r *FileRepositoryImpl) FindByID(id uint) (*models.File, error) {
	var file models.File
	if err := r.DB.First(&file, id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}
