package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"chat-app-server/models"
	"chat-app-server/repositories"
)

// EventPublisher fans an event out to all live subscribers of a topic.
// Publishing is fire-and-forget; the websocket hub implements this.
type EventPublisher interface {
	Publish(topic string, event models.Event)
}

// EventBridge relays message events to an external queue for consumers that
// need at-least-once delivery instead of the hub's best-effort fan-out.
type EventBridge interface {
	PublishMessage(view models.MessageView)
}

// MessageService owns the message lifecycle: append into the ledger, status
// transitions, edits, replies, forwards and soft deletion. Appends are
// serialized per chatroom so broadcast order matches creation order; all
// other mutations are row-level and may run concurrently.
type MessageService struct {
	MessageRepo repositories.MessageRepository
	UserRepo    repositories.UserRepository
	FileRepo    repositories.FileRepository
	ChatRooms   *ChatRoomService
	Events      EventPublisher
	Bridge      EventBridge

	mu        sync.Mutex
	roomLocks map[string]*sync.Mutex
}

func NewMessageService(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, fileRepo repositories.FileRepository, chatRooms *ChatRoomService) *MessageService {
	return &MessageService{
		MessageRepo: messageRepo,
		UserRepo:    userRepo,
		FileRepo:    fileRepo,
		ChatRooms:   chatRooms,
		roomLocks:   make(map[string]*sync.Mutex),
	}
}

func (s *MessageService) roomLock(chatroomID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.roomLocks[chatroomID]
	if !ok {
		lock = &sync.Mutex{}
		s.roomLocks[chatroomID] = lock
	}
	return lock
}

// SendPersonal appends a message to the pair's chatroom, resolving (or
// creating) the room first.
func (s *MessageService) SendPersonal(senderID, receiverID uint, content string, fileID *uint) (models.MessageView, error) {
	room, err := s.ChatRooms.ResolvePersonal(senderID, receiverID)
	if err != nil {
		return models.MessageView{}, err
	}

	draft := &models.Message{
		ChatroomID: room.ID,
		SenderID:   senderID,
		ReceiverID: &receiverID,
	}
	return s.append(room.ID, draft, content, fileID)
}

// SendGroup appends a message addressed to the chatroom's group; there is no
// single recipient.
func (s *MessageService) SendGroup(senderID, groupID uint, content string, fileID *uint) (models.MessageView, error) {
	if _, err := s.UserRepo.FindByID(senderID); err != nil {
		return models.MessageView{}, asNotFound(err, "user %d", senderID)
	}

	room, err := s.ChatRooms.ResolveGroup(groupID)
	if err != nil {
		return models.MessageView{}, err
	}

	draft := &models.Message{
		ChatroomID: room.ID,
		SenderID:   senderID,
		GroupID:    room.GroupID,
	}
	return s.append(room.ID, draft, content, fileID)
}

// Reply appends a message linked to an existing one. The target must exist
// somewhere in the ledger; soft-deleted targets are valid reply anchors, so a
// deleted original never breaks the conversation thread.
func (s *MessageService) Reply(senderID, targetID uint, content string, fileID *uint) (models.MessageView, error) {
	if _, err := s.UserRepo.FindByID(senderID); err != nil {
		return models.MessageView{}, asNotFound(err, "user %d", senderID)
	}

	target, err := s.MessageRepo.FindByID(targetID)
	if err != nil {
		return models.MessageView{}, asNotFound(err, "message %d", targetID)
	}

	draft := &models.Message{
		ChatroomID: target.ChatroomID,
		SenderID:   senderID,
		ReplyToID:  &target.ID,
	}
	return s.append(target.ChatroomID, draft, content, fileID)
}

// Forward copies an existing message's content and attachment into the
// destination chatroom, flagged as forwarded and linked to the source.
func (s *MessageService) Forward(messageID uint, destChatroomID string, senderID uint) (models.MessageView, error) {
	if _, err := s.UserRepo.FindByID(senderID); err != nil {
		return models.MessageView{}, asNotFound(err, "user %d", senderID)
	}

	source, err := s.MessageRepo.FindByID(messageID)
	if err != nil {
		return models.MessageView{}, asNotFound(err, "message %d", messageID)
	}

	dest, err := s.ChatRooms.GetByID(destChatroomID)
	if err != nil {
		return models.MessageView{}, err
	}

	draft := &models.Message{
		ChatroomID: dest.ID,
		SenderID:   senderID,
		Content:    source.Content,
		Kind:       source.Kind,
		FileID:     source.FileID,
		Forwarded:  true,
		ReplyToID:  &source.ID,
	}

	lock := s.roomLock(dest.ID)
	lock.Lock()
	defer lock.Unlock()
	return s.store(dest.ID, draft)
}

// append validates the draft body, resolves the attachment and stores the
// message under the chatroom's append lock.
func (s *MessageService) append(chatroomID string, draft *models.Message, content string, fileID *uint) (models.MessageView, error) {
	if content == "" && fileID == nil {
		return models.MessageView{}, fmt.Errorf("%w: a message needs content or an attachment", ErrInvalidArgument)
	}

	draft.Content = content
	draft.Kind = models.MessageKindText
	if fileID != nil {
		file, err := s.FileRepo.FindByID(*fileID)
		if err != nil {
			return models.MessageView{}, asNotFound(err, "file %d", *fileID)
		}
		draft.FileID = &file.ID
		draft.Kind = models.KindForMime(file.MimeType)
	}

	lock := s.roomLock(chatroomID)
	lock.Lock()
	defer lock.Unlock()
	return s.store(chatroomID, draft)
}

// store persists the draft and broadcasts it. Callers hold the room's append
// lock, so subscribers observe events in id order. The activity bump is
// best-effort; a stale lastActivity only degrades sort hints.
func (s *MessageService) store(chatroomID string, draft *models.Message) (models.MessageView, error) {
	draft.Status = models.MessageStatusSent
	if err := s.MessageRepo.Append(draft); err != nil {
		return models.MessageView{}, err
	}

	stored, err := s.MessageRepo.FindByID(draft.ID)
	if err != nil {
		return models.MessageView{}, err
	}

	s.ChatRooms.TouchActivity(chatroomID)

	view := models.ToMessageView(stored)
	if s.Events != nil {
		s.Events.Publish(models.TopicChat(chatroomID), models.Event{
			Type:       models.EventMessage,
			ChatroomID: chatroomID,
			Payload:    view,
		})
	}
	if s.Bridge != nil {
		s.Bridge.PublishMessage(view)
	}
	return view, nil
}

// List returns the chatroom's messages in creation order, hiding soft-deleted
// entries unless asked for them.
func (s *MessageService) List(chatroomID string, includeSoftDeleted bool) ([]models.MessageView, error) {
	if _, err := s.ChatRooms.GetByID(chatroomID); err != nil {
		return nil, err
	}

	messages, err := s.MessageRepo.ListByChatroom(chatroomID, includeSoftDeleted)
	if err != nil {
		return nil, err
	}

	views := make([]models.MessageView, 0, len(messages))
	for i := range messages {
		views = append(views, models.ToMessageView(&messages[i]))
	}
	return views, nil
}

// Get returns a single message, soft-deleted or not.
func (s *MessageService) Get(id uint) (models.MessageView, error) {
	message, err := s.MessageRepo.FindByID(id)
	if err != nil {
		return models.MessageView{}, asNotFound(err, "message %d", id)
	}
	return models.ToMessageView(message), nil
}

// UpdateStatus advances a message's delivery state. Transitions are strictly
// forward in SENT < DELIVERED < READ; skipping ahead is allowed, repeating
// the current state is an idempotent no-op, and moving backward fails.
// Soft-deleted messages still transition, they are only hidden from listings.
func (s *MessageService) UpdateStatus(id uint, status string) error {
	if models.StatusRank(status) == 0 {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, status)
	}

	message, err := s.MessageRepo.FindByID(id)
	if err != nil {
		return asNotFound(err, "message %d", id)
	}

	if status == message.Status {
		return nil
	}
	if models.StatusRank(status) < models.StatusRank(message.Status) {
		return fmt.Errorf("%w: message %d is already %s", ErrInvalidState, id, message.Status)
	}

	changed, err := s.MessageRepo.UpdateStatus(id, status)
	if err != nil {
		return err
	}
	if !changed {
		// A concurrent writer advanced the message at least this far.
		return nil
	}

	if s.Events != nil {
		s.Events.Publish(models.TopicMessageStatus, models.Event{
			Type:       models.EventStatus,
			ChatroomID: message.ChatroomID,
			Payload: models.StatusEventPayload{
				MessageID:  id,
				ChatroomID: message.ChatroomID,
				Status:     status,
			},
		})
	}
	return nil
}

// Edit replaces the content of a message and stamps EditedAt. Editing a
// soft-deleted message is rejected; repeated edits only refresh the stamp.
func (s *MessageService) Edit(id uint, content string) (models.MessageView, error) {
	if content == "" {
		return models.MessageView{}, fmt.Errorf("%w: edited content cannot be empty", ErrInvalidArgument)
	}

	message, err := s.MessageRepo.FindByID(id)
	if err != nil {
		return models.MessageView{}, asNotFound(err, "message %d", id)
	}
	if message.SoftDeleted {
		return models.MessageView{}, fmt.Errorf("%w: message %d is deleted", ErrInvalidState, id)
	}

	if err := s.MessageRepo.UpdateContent(id, content, time.Now()); err != nil {
		return models.MessageView{}, err
	}

	updated, err := s.MessageRepo.FindByID(id)
	if err != nil {
		return models.MessageView{}, err
	}

	view := models.ToMessageView(updated)
	if s.Events != nil {
		s.Events.Publish(models.TopicChat(updated.ChatroomID), models.Event{
			Type:       models.EventMessageEdited,
			ChatroomID: updated.ChatroomID,
			Payload:    view,
		})
	}
	return view, nil
}

// SoftDelete hides a message from listings while keeping it addressable for
// replies and forwards. Deleting twice is a no-op, not an error.
func (s *MessageService) SoftDelete(id uint) error {
	message, err := s.MessageRepo.FindByID(id)
	if err != nil {
		return asNotFound(err, "message %d", id)
	}
	if message.SoftDeleted {
		return nil
	}

	if err := s.MessageRepo.MarkSoftDeleted(id); err != nil {
		return err
	}
	log.Printf("[message] soft-deleted message %d in chatroom %s", id, message.ChatroomID)

	if s.Events != nil {
		s.Events.Publish(models.TopicChat(message.ChatroomID), models.Event{
			Type:       models.EventMessageDeleted,
			ChatroomID: message.ChatroomID,
			Payload:    map[string]uint{"message_id": id},
		})
	}
	return nil
}
