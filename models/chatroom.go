package models

import (
	"fmt"
	"time"
)

const (
	ChatRoomPersonal = "PERSONAL"
	ChatRoomGroup    = "GROUP"
)

// ChatRoom is the durable conversation context. The ID is the conversation
// key: deterministic "<min>_<max>" for personal chats, "group_<id>" for group
// chats, so independent creators converge on the same row.
type ChatRoom struct {
	ID           string    `gorm:"primarykey" json:"id"`
	Kind         string    `gorm:"not null" json:"kind"`
	GroupID      *uint     `gorm:"index" json:"group_id,omitempty"`
	Group        *Group    `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Participants []User    `gorm:"many2many:chatroom_participants" json:"participants,omitempty"`
	LastActivity time.Time `gorm:"not null" json:"last_activity"`
	CreatedAt    time.Time `json:"created_at"`
}

// PersonalChatRoomID builds the canonical order-independent id for a pair of
// users. Both orderings of the same pair yield the same id.
func PersonalChatRoomID(userA, userB uint) string {
	if userA > userB {
		userA, userB = userB, userA
	}
	return fmt.Sprintf("%d_%d", userA, userB)
}

// GroupChatRoomID builds the chatroom id for a group. Uniqueness follows from
// group id uniqueness.
func GroupChatRoomID(groupID uint) string {
	return fmt.Sprintf("group_%d", groupID)
}
