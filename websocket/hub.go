package websocket

import (
	"log"

	"chat-app-server/models"
)

// MessageSender is the slice of the message service the socket layer needs.
// Declared here so the hub stays free of a service import.
type MessageSender interface {
	SendPersonal(senderID, receiverID uint, content string, fileID *uint) (models.MessageView, error)
	SendGroup(senderID, groupID uint, content string, fileID *uint) (models.MessageView, error)
	Reply(senderID, targetID uint, content string, fileID *uint) (models.MessageView, error)
	UpdateStatus(id uint, status string) error
}

// PresenceTracker receives online/offline edges as connections come and go.
type PresenceTracker interface {
	MarkOnline(userID uint)
	MarkOffline(userID uint)
}

type subscription struct {
	client *Client
	topic  string
}

type outbound struct {
	topic string
	event models.Event
}

// Hub tracks which connections are subscribed to which topics and fans
// events out to them. A single run-loop goroutine owns all state, so events
// published to one topic reach its subscribers in publish order and never
// leak into another topic.
type Hub struct {
	topics map[string]map[*Client]bool
	// reverse index, doubles as the liveness check for a connection
	clients map[*Client]map[string]bool
	// live connection count per user, drives the presence projection
	userConns map[uint]int

	register    chan *Client
	unregister  chan *Client
	subscribe   chan subscription
	unsubscribe chan subscription
	broadcast   chan outbound

	Messages MessageSender
	Presence PresenceTracker
}

func NewHub(messages MessageSender, presence PresenceTracker) *Hub {
	return &Hub{
		topics:      make(map[string]map[*Client]bool),
		clients:     make(map[*Client]map[string]bool),
		userConns:   make(map[uint]int),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan subscription),
		unsubscribe: make(chan subscription),
		broadcast:   make(chan outbound, 256),
		Messages:    messages,
		Presence:    presence,
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Subscribe adds the client to a topic. Subscribing twice is a no-op.
func (h *Hub) Subscribe(client *Client, topic string) {
	h.subscribe <- subscription{client: client, topic: topic}
}

// Unsubscribe removes the client from a topic. Unknown memberships are a
// no-op.
func (h *Hub) Unsubscribe(client *Client, topic string) {
	h.unsubscribe <- subscription{client: client, topic: topic}
}

// Publish fans the event out to the topic's current subscribers. Fire and
// forget: no backlog, no replay, slow consumers are dropped.
func (h *Hub) Publish(topic string, event models.Event) {
	h.broadcast <- outbound{topic: topic, event: event}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = make(map[string]bool)
			h.userConns[client.UserID]++
			if h.userConns[client.UserID] == 1 && h.Presence != nil {
				h.Presence.MarkOnline(client.UserID)
			}
			// every connection sees delivery-state changes
			h.join(client, models.TopicMessageStatus)
			log.Printf("[hub] connection %s registered for user %d", client.ID, client.UserID)

		case client := <-h.unregister:
			h.drop(client)

		case sub := <-h.subscribe:
			if topics, ok := h.clients[sub.client]; !ok || topics[sub.topic] {
				continue
			}
			h.join(sub.client, sub.topic)
			h.publishPresence(models.EventJoin, sub)

		case sub := <-h.unsubscribe:
			if topics, ok := h.clients[sub.client]; !ok || !topics[sub.topic] {
				continue
			}
			h.leave(sub.client, sub.topic)
			h.publishPresence(models.EventLeave, sub)

		case out := <-h.broadcast:
			h.deliver(out.topic, out.event)
		}
	}
}

func (h *Hub) deliver(topic string, event models.Event) {
	for client := range h.topics[topic] {
		select {
		case client.send <- event:
		default:
			// dead or slow subscriber; publishing never blocks
			h.drop(client)
		}
	}
}

func (h *Hub) join(client *Client, topic string) {
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Client]bool)
	}
	h.topics[topic][client] = true
	h.clients[client][topic] = true
}

func (h *Hub) leave(client *Client, topic string) {
	delete(h.topics[topic], client)
	if len(h.topics[topic]) == 0 {
		delete(h.topics, topic)
	}
	delete(h.clients[client], topic)
}

// drop removes the connection from every topic it was subscribed to and,
// when it was the user's last one, flips the user offline.
func (h *Hub) drop(client *Client) {
	topics, ok := h.clients[client]
	if !ok {
		return
	}
	for topic := range topics {
		delete(h.topics[topic], client)
		if len(h.topics[topic]) == 0 {
			delete(h.topics, topic)
		}
	}
	delete(h.clients, client)
	close(client.send)

	h.userConns[client.UserID]--
	if h.userConns[client.UserID] <= 0 {
		delete(h.userConns, client.UserID)
		if h.Presence != nil {
			h.Presence.MarkOffline(client.UserID)
		}
	}
	log.Printf("[hub] connection %s dropped for user %d", client.ID, client.UserID)
}

// publishPresence announces a join/leave on chat topics. Control topics like
// messages/status carry no presence traffic.
func (h *Hub) publishPresence(eventType string, sub subscription) {
	chatroomID, ok := models.ChatroomFromTopic(sub.topic)
	if !ok {
		return
	}
	h.deliver(sub.topic, models.Event{
		Type:       eventType,
		ChatroomID: chatroomID,
		Payload: models.PresenceEventPayload{
			ChatroomID: chatroomID,
			UserID:     sub.client.UserID,
		},
	})
}
