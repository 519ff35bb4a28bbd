package repositories

import (
	"time"

	"chat-app-server/models"
)

// ChatRoomRepository is the identity store: the durable mapping from
// conversation key to chatroom record.
type ChatRoomRepository interface {
	// CreateIfAbsent atomically inserts the room unless one with the same id
	// already exists. Returns false when another writer won the race.
	CreateIfAbsent(room *models.ChatRoom) (bool, error)
	FindByID(id string) (*models.ChatRoom, error)
	// FindPersonalByParticipants looks the room up by the unordered pair, so
	// either participant ordering resolves to the same record.
	FindPersonalByParticipants(userA, userB uint) (*models.ChatRoom, error)
	FindByGroup(groupID uint) (*models.ChatRoom, error)
	FindByParticipant(userID uint) ([]models.ChatRoom, error)
	AddParticipant(chatroomID string, user *models.User) error
	RemoveParticipant(chatroomID string, user *models.User) error
	TouchActivity(chatroomID string, at time.Time) error
}
