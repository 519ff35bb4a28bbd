package services

import (
	"chat-app-server/models"
	"chat-app-server/repositories"
)

// UserService exposes user lookups with the live presence view layered on
// top of the stored profile.
type UserService struct {
	UserRepo repositories.UserRepository
	Presence *PresenceService
}

func NewUserService(userRepo repositories.UserRepository, presence *PresenceService) *UserService {
	return &UserService{UserRepo: userRepo, Presence: presence}
}

func (s *UserService) Get(id uint) (*models.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return nil, asNotFound(err, "user %d", id)
	}
	if s.Presence != nil {
		if s.Presence.IsOnline(user.ID) {
			user.Status = models.UserStatusOnline
		} else {
			user.Status = models.UserStatusOffline
		}
	}
	return user, nil
}

func (s *UserService) GetByUsername(username string) (*models.User, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		return nil, asNotFound(err, "user %q", username)
	}
	return user, nil
}
