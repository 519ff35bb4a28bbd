package impl

import (
	"time"

	"chat-app-server/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatRoomRepositoryImpl struct {
	DB *gorm.DB
}

func NewChatRoomRepository(db *gorm.DB) *ChatRoomRepositoryImpl {
	return &ChatRoomRepositoryImpl{DB: db}
}

// CreateIfAbsent relies on the primary-key constraint for atomicity: the
// insert is ON CONFLICT DO NOTHING, so two racing resolvers converge on one
// row and the loser sees RowsAffected == 0.
func (r *ChatRoomRepositoryImpl) CreateIfAbsent(room *models.ChatRoom) (bool, error) {
	res := r.DB.
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(room)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	if len(room.Participants) > 0 {
		participants := make([]*models.User, 0, len(room.Participants))
		for i := range room.Participants {
			participants = append(participants, &room.Participants[i])
		}
		if err := r.DB.Model(room).Association("Participants").Append(participants); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (r *ChatRoomRepositoryImpl) FindByID(id string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := r.DB.Preload("Participants").First(&room, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *ChatRoomRepositoryImpl) FindPersonalByParticipants(userA, userB uint) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := r.DB.Preload("Participants").
		Where("kind = ?", models.ChatRoomPersonal).
		Where("id IN (?)", r.DB.Table("chatroom_participants").
			Select("chat_room_id").
			Where("user_id IN ?", []uint{userA, userB}).
			Group("chat_room_id").
			Having("COUNT(DISTINCT user_id) = 2")).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *ChatRoomRepositoryImpl) FindByGroup(groupID uint) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := r.DB.Preload("Participants").
		Where("kind = ? AND group_id = ?", models.ChatRoomGroup, groupID).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *ChatRoomRepositoryImpl) FindByParticipant(userID uint) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := r.DB.Preload("Participants").
		Where("id IN (?)", r.DB.Table("chatroom_participants").
			Select("chat_room_id").
			Where("user_id = ?", userID)).
		Order("last_activity DESC").
		Find(&rooms).Error
	return rooms, err
}

func (r *ChatRoomRepositoryImpl) AddParticipant(chatroomID string, user *models.User) error {
	return r.DB.Model(&models.ChatRoom{ID: chatroomID}).
		Association("Participants").Append(user)
}

func (r *ChatRoomRepositoryImpl) RemoveParticipant(chatroomID string, user *models.User) error {
	return r.DB.Model(&models.ChatRoom{ID: chatroomID}).
		Association("Participants").Delete(user)
}

func (r *ChatRoomRepositoryImpl) TouchActivity(chatroomID string, at time.Time) error {
	return r.DB.Model(&models.ChatRoom{}).
		Where("id = ?", chatroomID).
		Update("last_activity", at).Error
}
