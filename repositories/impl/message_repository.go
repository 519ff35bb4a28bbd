package impl

import (
	"time"

	"chat-app-server/models"

	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepositoryImpl {
	return &MessageRepositoryImpl{DB: db}
}

func (r *MessageRepositoryImpl) Append(message *models.Message) error {
	return r.DB.Create(message).Error
}

func (r *MessageRepositoryImpl) FindByID(id uint) (*models.Message, error) {
	var message models.Message
	err := r.DB.
		Preload("Sender").
		Preload("File").
		Preload("ReplyTo").
		Preload("ReplyTo.Sender").
		First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepositoryImpl) ListByChatroom(chatroomID string, includeSoftDeleted bool) ([]models.Message, error) {
	var messages []models.Message
	query := r.DB.
		Preload("Sender").
		Preload("File").
		Preload("ReplyTo").
		Preload("ReplyTo.Sender").
		Where("chatroom_id = ?", chatroomID)

	if !includeSoftDeleted {
		query = query.Where("soft_deleted = ?", false)
	}

	err := query.Order("id ASC").Find(&messages).Error
	return messages, err
}

// UpdateStatus keeps transitions monotonic under concurrency: the WHERE
// clause only matches rows whose current status is strictly behind the new
// one, so a racing READ can never be overwritten by a late DELIVERED.
func (r *MessageRepositoryImpl) UpdateStatus(id uint, status string) (bool, error) {
	res := r.DB.Model(&models.Message{}).
		Where("id = ? AND status IN ?", id, models.StatusesBelow(status)).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *MessageRepositoryImpl) UpdateContent(id uint, content string, editedAt time.Time) error {
	return r.DB.Model(&models.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":   content,
			"edited_at": editedAt,
		}).Error
}

func (r *MessageRepositoryImpl) MarkSoftDeleted(id uint) error {
	return r.DB.Model(&models.Message{}).
		Where("id = ?", id).
		Update("soft_deleted", true).Error
}
