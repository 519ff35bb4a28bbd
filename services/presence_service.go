package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"chat-app-server/models"
	"chat-app-server/repositories"

	"github.com/redis/go-redis/v9"
)

const presenceKeyTTL = 24 * time.Hour

// PresenceService projects the hub's connection state into Redis and the
// durable users.status column. The hub is the source of truth; both writes
// are best-effort and never block or fail a connect/disconnect.
type PresenceService struct {
	UserRepo repositories.UserRepository
	Redis    *redis.Client
}

func NewPresenceService(userRepo repositories.UserRepository, rdb *redis.Client) *PresenceService {
	return &PresenceService{
		UserRepo: userRepo,
		Redis:    rdb,
	}
}

func presenceKey(userID uint) string {
	return fmt.Sprintf("presence:user:%d", userID)
}

// MarkOnline records that the user has at least one live connection.
func (s *PresenceService) MarkOnline(userID uint) {
	s.project(userID, models.UserStatusOnline)
}

// MarkOffline records that the user's last connection went away.
func (s *PresenceService) MarkOffline(userID uint) {
	s.project(userID, models.UserStatusOffline)
}

// IsOnline reads the Redis projection. Absence of the key means offline.
func (s *PresenceService) IsOnline(userID uint) bool {
	if s.Redis == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	status, err := s.Redis.Get(ctx, presenceKey(userID)).Result()
	if err != nil {
		return false
	}
	return status == models.UserStatusOnline
}

func (s *PresenceService) project(userID uint, status string) {
	if s.Redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.Redis.Set(ctx, presenceKey(userID), status, presenceKeyTTL).Err(); err != nil {
			log.Printf("[presence] redis write for user %d failed: %v", userID, err)
		}
	}

	// The durable column trails the hub asynchronously; a connect/disconnect
	// never waits on the database.
	go func() {
		if err := s.UserRepo.UpdateStatus(userID, status); err != nil {
			log.Printf("[presence] status projection for user %d failed: %v", userID, err)
		}
	}()
}
