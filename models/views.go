package models

import (
	"time"
)

// View projections. One pure function per entity; controllers and the
// websocket layer never assemble response shapes by hand.

type AttachmentView struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

type RepliedToView struct {
	ID         uint   `json:"id"`
	SenderName string `json:"sender_name"`
	Content    string `json:"content"`
}

type MessageView struct {
	ID            uint            `json:"id"`
	ChatroomID    string          `json:"chatroom_id"`
	SenderName    string          `json:"sender_name"`
	Content       string          `json:"content"`
	Timestamp     time.Time       `json:"timestamp"`
	Status        string          `json:"status"`
	Kind          string          `json:"kind"`
	Attachment    *AttachmentView `json:"attachment,omitempty"`
	RepliedTo     *RepliedToView  `json:"replied_to,omitempty"`
	Edited        bool            `json:"edited"`
	EditTimestamp *time.Time      `json:"edit_timestamp,omitempty"`
	Forwarded     bool            `json:"forwarded"`
}

type ChatRoomView struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	GroupID      *uint     `json:"group_id,omitempty"`
	Participants []uint    `json:"participant_ids"`
	LastActivity time.Time `json:"last_activity"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToMessageView projects a ledger entry into its wire shape. Expects Sender,
// File and ReplyTo (with its own Sender) to be preloaded where present.
func ToMessageView(m *Message) MessageView {
	view := MessageView{
		ID:            m.ID,
		ChatroomID:    m.ChatroomID,
		SenderName:    m.Sender.Username,
		Content:       m.Content,
		Timestamp:     m.CreatedAt,
		Status:        m.Status,
		Kind:          m.Kind,
		Edited:        m.EditedAt != nil,
		EditTimestamp: m.EditedAt,
		Forwarded:     m.Forwarded,
	}

	if m.File != nil {
		view.Attachment = &AttachmentView{
			URL:  m.File.URL,
			Name: m.File.Name,
			Size: m.File.Size,
			Type: m.File.MimeType,
		}
	}

	if m.ReplyTo != nil {
		view.RepliedTo = &RepliedToView{
			ID:         m.ReplyTo.ID,
			SenderName: m.ReplyTo.Sender.Username,
			Content:    m.ReplyTo.Content,
		}
	}

	return view
}

// ToChatRoomView projects a chatroom. Participants collapse to ids; full user
// records are the identity provider's business.
func ToChatRoomView(room *ChatRoom) ChatRoomView {
	ids := make([]uint, 0, len(room.Participants))
	for _, p := range room.Participants {
		ids = append(ids, p.ID)
	}

	return ChatRoomView{
		ID:           room.ID,
		Kind:         room.Kind,
		GroupID:      room.GroupID,
		Participants: ids,
		LastActivity: room.LastActivity,
		CreatedAt:    room.CreatedAt,
	}
}
