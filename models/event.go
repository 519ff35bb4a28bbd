package models

// Real-time event envelope, shared by the REST and websocket paths so every
// subscriber sees the same wire shape.

const (
	EventMessage        = "message"
	EventMessageEdited  = "message_edited"
	EventMessageDeleted = "message_deleted"
	EventStatus         = "status"
	EventTyping         = "typing"
	EventJoin           = "join"
	EventLeave          = "leave"
)

// TopicMessageStatus carries delivery-state changes for all chatrooms.
const TopicMessageStatus = "messages/status"

// TopicChat is the per-chatroom topic carrying message, typing and presence
// events for that room only.
func TopicChat(chatroomID string) string {
	return "chat/" + chatroomID
}

// ChatroomFromTopic inverts TopicChat. The second return is false for
// control topics such as TopicMessageStatus.
func ChatroomFromTopic(topic string) (string, bool) {
	if len(topic) > len("chat/") && topic[:len("chat/")] == "chat/" {
		return topic[len("chat/"):], true
	}
	return "", false
}

type Event struct {
	Type       string      `json:"type"`
	ChatroomID string      `json:"chatroom_id,omitempty"`
	Payload    interface{} `json:"payload,omitempty"`
}

type StatusEventPayload struct {
	MessageID  uint   `json:"message_id"`
	ChatroomID string `json:"chatroom_id"`
	Status     string `json:"status"`
}

type TypingEventPayload struct {
	ChatroomID string `json:"chatroom_id"`
	UserID     uint   `json:"user_id"`
	IsTyping   bool   `json:"is_typing"`
}

type PresenceEventPayload struct {
	ChatroomID string `json:"chatroom_id"`
	UserID     uint   `json:"user_id"`
}
