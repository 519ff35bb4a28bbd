package models

import (
	"strings"
	"time"
)

// Message delivery states, strictly ordered.
const (
	MessageStatusSent      = "SENT"
	MessageStatusDelivered = "DELIVERED"
	MessageStatusRead      = "READ"
)

// Message kinds, derived from the attachment MIME type.
const (
	MessageKindText  = "TEXT"
	MessageKindImage = "IMAGE"
	MessageKindAudio = "AUDIO"
	MessageKindVideo = "VIDEO"
)

// StatusRank maps a delivery state onto the SENT < DELIVERED < READ ordering.
// Unknown states rank below SENT so they can never pass a monotonicity check.
func StatusRank(status string) int {
	switch status {
	case MessageStatusSent:
		return 1
	case MessageStatusDelivered:
		return 2
	case MessageStatusRead:
		return 3
	}
	return 0
}

// StatusesBelow returns every valid state strictly behind the given one.
// Used as the SQL guard that keeps concurrent status updates monotonic.
func StatusesBelow(status string) []string {
	below := []string{}
	for _, s := range []string{MessageStatusSent, MessageStatusDelivered, MessageStatusRead} {
		if StatusRank(s) < StatusRank(status) {
			below = append(below, s)
		}
	}
	return below
}

// KindForMime derives the message kind from an attachment MIME type.
func KindForMime(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return MessageKindImage
	case strings.HasPrefix(mimeType, "audio/"):
		return MessageKindAudio
	case strings.HasPrefix(mimeType, "video/"):
		return MessageKindVideo
	}
	return MessageKindText
}

// Message is one entry in a chatroom's append-only ledger. The autoincrement
// id doubles as the ordering key within the room. ReplyToID is a weak
// reference: it links, it never owns, so deleting the original cannot cascade.
type Message struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	ChatroomID  string     `gorm:"not null;index" json:"chatroom_id"`
	SenderID    uint       `gorm:"not null" json:"sender_id"`
	Sender      User       `gorm:"foreignKey:SenderID" json:"sender"`
	ReceiverID  *uint      `json:"receiver_id,omitempty"`
	GroupID     *uint      `json:"group_id,omitempty"`
	Content     string     `json:"content"`
	Kind        string     `gorm:"not null;default:'TEXT'" json:"kind"`
	Status      string     `gorm:"not null;default:'SENT'" json:"status"`
	FileID      *uint      `json:"file_id,omitempty"`
	File        *File      `gorm:"foreignKey:FileID" json:"file,omitempty"`
	SoftDeleted bool       `gorm:"not null;default:false" json:"soft_deleted"`
	EditedAt    *time.Time `json:"edited_at,omitempty"`
	Forwarded   bool       `gorm:"not null;default:false" json:"forwarded"`
	ReplyToID   *uint      `json:"reply_to_id,omitempty"`
	ReplyTo     *Message   `gorm:"foreignKey:ReplyToID" json:"reply_to,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
