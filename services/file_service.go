package services

import (
	"chat-app-server/models"
	"chat-app-server/repositories"
)

// FileService records attachment metadata. Upload and storage happen
// elsewhere; messages reference files by id.
type FileService struct {
	FileRepo repositories.FileRepository
	UserRepo repositories.UserRepository
}

func NewFileService(fileRepo repositories.FileRepository, userRepo repositories.UserRepository) *FileService {
	return &FileService{FileRepo: fileRepo, UserRepo: userRepo}
}

func (s *FileService) Register(url, name, mimeType string, size int64, uploadedByID uint) (*models.File, error) {
	if url == "" || name == "" {
		return nil, ErrInvalidArgument
	}
	if _, err := s.UserRepo.FindByID(uploadedByID); err != nil {
		return nil, asNotFound(err, "user %d", uploadedByID)
	}

	file := &models.File{
		URL:          url,
		Name:         name,
		Size:         size,
		MimeType:     mimeType,
		UploadedByID: uploadedByID,
	}
	if err := s.FileRepo.Create(file); err != nil {
		return nil, err
	}
	return file, nil
}

func (s *FileService) Get(id uint) (*models.File, error) {
	file, err := s.FileRepo.FindByID(id)
	if err != nil {
		return nil, asNotFound(err, "file %d", id)
	}
	return file, nil
}
