package services

import (
	"fmt"
	"time"

	"chat-app-server/models"
	"chat-app-server/repositories"
	"chat-app-server/utils"

	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// AuthService is a thin wrapper around the user store: registration and
// login. Credential handling has no chat-side invariants.
type AuthService struct {
	UserRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) *AuthService {
	return &AuthService{UserRepo: userRepo}
}

func (s *AuthService) Register(username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrInvalidArgument)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Status:   models.UserStatusOffline,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues an access and a refresh token.
func (s *AuthService) Login(username, password string) (*models.User, string, string, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		return nil, "", "", asNotFound(err, "user %s", username)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", "", fmt.Errorf("%w: invalid credentials", ErrInvalidArgument)
	}

	accessToken, err := utils.GenerateToken(user, accessTokenTTL)
	if err != nil {
		return nil, "", "", err
	}
	refreshToken, err := utils.GenerateToken(user, refreshTokenTTL)
	if err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := utils.ValidateToken(refreshToken)
	if err != nil {
		return "", fmt.Errorf("%w: invalid refresh token", ErrInvalidArgument)
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return "", asNotFound(err, "user %d", claims.UserID)
	}
	return utils.GenerateToken(user, accessTokenTTL)
}
