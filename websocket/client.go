package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"chat-app-server/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// inboundFrame is the client-to-server action envelope. Fields beyond action
// are populated per action kind.
type inboundFrame struct {
	Action     string `json:"action"`
	ChatroomID string `json:"chatroom_id,omitempty"`
	ReceiverID uint   `json:"receiver_id,omitempty"`
	GroupID    uint   `json:"group_id,omitempty"`
	MessageID  uint   `json:"message_id,omitempty"`
	Content    string `json:"content,omitempty"`
	FileID     *uint  `json:"file_id,omitempty"`
	Status     string `json:"status,omitempty"`
	IsTyping   bool   `json:"is_typing,omitempty"`
}

// Client is one websocket connection of one authenticated user. A user may
// hold several at once.
type Client struct {
	ID       string
	UserID   uint
	Username string

	hub  *Hub
	conn *websocket.Conn
	send chan models.Event
}

// ReadPump consumes inbound frames until the connection dies, then
// unregisters the client.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[ws] read error on %s: %v", c.ID, err)
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			log.Printf("[ws] bad frame from %s: %v", c.ID, err)
			continue
		}
		c.handle(frame)
	}
}

func (c *Client) handle(frame inboundFrame) {
	switch frame.Action {
	case "subscribe":
		if frame.ChatroomID != "" {
			c.hub.Subscribe(c, models.TopicChat(frame.ChatroomID))
		}

	case "unsubscribe":
		if frame.ChatroomID != "" {
			c.hub.Unsubscribe(c, models.TopicChat(frame.ChatroomID))
		}

	case "send":
		var err error
		switch {
		case frame.ReceiverID != 0:
			_, err = c.hub.Messages.SendPersonal(c.UserID, frame.ReceiverID, frame.Content, frame.FileID)
		case frame.GroupID != 0:
			_, err = c.hub.Messages.SendGroup(c.UserID, frame.GroupID, frame.Content, frame.FileID)
		default:
			log.Printf("[ws] send without receiver_id or group_id from %s", c.ID)
			return
		}
		if err != nil {
			log.Printf("[ws] send failed for user %d: %v", c.UserID, err)
		}

	case "reply":
		if _, err := c.hub.Messages.Reply(c.UserID, frame.MessageID, frame.Content, frame.FileID); err != nil {
			log.Printf("[ws] reply failed for user %d: %v", c.UserID, err)
		}

	case "status":
		if err := c.hub.Messages.UpdateStatus(frame.MessageID, frame.Status); err != nil {
			log.Printf("[ws] status update failed for message %d: %v", frame.MessageID, err)
		}

	case "typing":
		if frame.ChatroomID == "" {
			return
		}
		c.hub.Publish(models.TopicChat(frame.ChatroomID), models.Event{
			Type:       models.EventTyping,
			ChatroomID: frame.ChatroomID,
			Payload: models.TypingEventPayload{
				ChatroomID: frame.ChatroomID,
				UserID:     c.UserID,
				IsTyping:   frame.IsTyping,
			},
		})

	default:
		log.Printf("[ws] unknown action %q from %s", frame.Action, c.ID)
	}
}

// WritePump drains the send channel onto the wire and keeps the connection
// alive with pings. One writer per connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				log.Printf("[ws] write error on %s: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs upgrades the request and starts the connection's pumps. The caller
// authenticates first and passes the resolved identity in.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request, userID uint, username string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}

	client := &Client{
		ID:       uuid.NewString(),
		UserID:   userID,
		Username: username,
		hub:      hub,
		conn:     conn,
		send:     make(chan models.Event, 64),
	}
	hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
