package repositories

import (
	"time"

	"chat-app-server/models"
)

// MessageRepository is the append-only message ledger for all chatrooms.
type MessageRepository interface {
	Append(message *models.Message) error
	// FindByID returns soft-deleted entries too; they stay addressable as
	// reply and forward targets.
	FindByID(id uint) (*models.Message, error)
	// ListByChatroom returns messages in creation (id) order. Soft-deleted
	// entries are excluded unless explicitly requested.
	ListByChatroom(chatroomID string, includeSoftDeleted bool) ([]models.Message, error)
	// UpdateStatus moves a message to status only if its current status is
	// strictly behind it. Returns false when no row matched the guard.
	UpdateStatus(id uint, status string) (bool, error)
	UpdateContent(id uint, content string, editedAt time.Time) error
	MarkSoftDeleted(id uint) error
}
