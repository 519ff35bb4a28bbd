package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"chat-app-server/models"
	"chat-app-server/repositories/mocks"
)

// eventRecorder captures published events in order.
type eventRecorder struct {
	mu     sync.Mutex
	topics []string
	events []models.Event
}

func (r *eventRecorder) Publish(topic string, event models.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics = append(r.topics, topic)
	r.events = append(r.events, event)
}

type messageFixture struct {
	service      *MessageService
	messageRepo  *mocks.MessageRepository
	userRepo     *mocks.UserRepository
	fileRepo     *mocks.FileRepository
	chatRoomRepo *mocks.ChatRoomRepository
	groupRepo    *mocks.GroupRepository
	events       *eventRecorder
}

func newMessageFixture() *messageFixture {
	f := &messageFixture{
		messageRepo:  new(mocks.MessageRepository),
		userRepo:     new(mocks.UserRepository),
		fileRepo:     new(mocks.FileRepository),
		chatRoomRepo: new(mocks.ChatRoomRepository),
		groupRepo:    new(mocks.GroupRepository),
		events:       &eventRecorder{},
	}
	chatRooms := NewChatRoomService(f.chatRoomRepo, f.userRepo, f.groupRepo)
	f.service = NewMessageService(f.messageRepo, f.userRepo, f.fileRepo, chatRooms)
	f.service.Events = f.events
	return f
}

// expectStore wires the append path: Append assigns the id, the follow-up
// read returns the stored row, the activity bump succeeds.
func (f *messageFixture) expectStore(id uint, stored *models.Message) {
	f.messageRepo.On("Append", mock.Anything).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Message).ID = id
	}).Return(nil)
	f.messageRepo.On("FindByID", id).Return(stored, nil)
	f.chatRoomRepo.On("TouchActivity", mock.Anything, mock.Anything).Return(nil)
}

func TestSendPersonalStoresAndBroadcasts(t *testing.T) {
	f := newMessageFixture()

	f.userRepo.On("FindByID", uint(5)).Return(&models.User{ID: 5, Username: "alice"}, nil)
	f.userRepo.On("FindByID", uint(9)).Return(&models.User{ID: 9, Username: "bob"}, nil)
	f.chatRoomRepo.On("FindPersonalByParticipants", uint(5), uint(9)).
		Return(&models.ChatRoom{ID: "5_9", Kind: models.ChatRoomPersonal}, nil)

	stored := &models.Message{
		ID:         42,
		ChatroomID: "5_9",
		SenderID:   5,
		Sender:     models.User{ID: 5, Username: "alice"},
		Content:    "hello",
		Kind:       models.MessageKindText,
		Status:     models.MessageStatusSent,
	}
	f.expectStore(42, stored)

	view, err := f.service.SendPersonal(5, 9, "hello", nil)

	assert.NoError(t, err)
	assert.Equal(t, uint(42), view.ID)
	assert.Equal(t, "5_9", view.ChatroomID)
	assert.Equal(t, "alice", view.SenderName)
	assert.Equal(t, models.MessageStatusSent, view.Status)

	assert.Equal(t, []string{"chat/5_9"}, f.events.topics)
	assert.Equal(t, models.EventMessage, f.events.events[0].Type)
}

func TestSendRequiresContentOrAttachment(t *testing.T) {
	f := newMessageFixture()

	f.userRepo.On("FindByID", mock.Anything).Return(&models.User{ID: 5}, nil)
	f.chatRoomRepo.On("FindPersonalByParticipants", uint(5), uint(9)).
		Return(&models.ChatRoom{ID: "5_9", Kind: models.ChatRoomPersonal}, nil)

	_, err := f.service.SendPersonal(5, 9, "", nil)

	assert.ErrorIs(t, err, ErrInvalidArgument)
	f.messageRepo.AssertNotCalled(t, "Append", mock.Anything)
}

func TestSendWithAttachmentDerivesKind(t *testing.T) {
	f := newMessageFixture()

	fileID := uint(3)
	f.userRepo.On("FindByID", mock.Anything).Return(&models.User{ID: 5}, nil)
	f.chatRoomRepo.On("FindPersonalByParticipants", uint(5), uint(9)).
		Return(&models.ChatRoom{ID: "5_9", Kind: models.ChatRoomPersonal}, nil)
	f.fileRepo.On("FindByID", fileID).Return(&models.File{ID: 3, MimeType: "image/png"}, nil)

	stored := &models.Message{
		ID:         7,
		ChatroomID: "5_9",
		Kind:       models.MessageKindImage,
		Status:     models.MessageStatusSent,
		FileID:     &fileID,
		File:       &models.File{ID: 3, URL: "https://cdn/x.png", Name: "x.png", MimeType: "image/png"},
	}
	f.expectStore(7, stored)

	view, err := f.service.SendPersonal(5, 9, "", &fileID)

	assert.NoError(t, err)
	assert.Equal(t, models.MessageKindImage, view.Kind)
	assert.NotNil(t, view.Attachment)
	assert.Equal(t, "image/png", view.Attachment.Type)
}

func TestSendGroupAddressesGroup(t *testing.T) {
	f := newMessageFixture()

	groupID := uint(7)
	f.userRepo.On("FindByID", uint(5)).Return(&models.User{ID: 5}, nil)
	f.groupRepo.On("FindByID", groupID).Return(&models.Group{ID: 7, Members: []models.User{{ID: 5}, {ID: 9}}}, nil)
	f.chatRoomRepo.On("FindByGroup", groupID).
		Return(&models.ChatRoom{ID: "group_7", Kind: models.ChatRoomGroup, GroupID: &groupID}, nil)

	stored := &models.Message{
		ID:         11,
		ChatroomID: "group_7",
		SenderID:   5,
		GroupID:    &groupID,
		Content:    "hi all",
		Kind:       models.MessageKindText,
		Status:     models.MessageStatusSent,
	}
	f.expectStore(11, stored)

	view, err := f.service.SendGroup(5, 7, "hi all", nil)

	assert.NoError(t, err)
	assert.Equal(t, "group_7", view.ChatroomID)
	assert.Equal(t, []string{"chat/group_7"}, f.events.topics)
}

func TestUpdateStatusForwardSkipAllowed(t *testing.T) {
	f := newMessageFixture()

	f.messageRepo.On("FindByID", uint(42)).
		Return(&models.Message{ID: 42, ChatroomID: "5_9", Status: models.MessageStatusSent}, nil)
	f.messageRepo.On("UpdateStatus", uint(42), models.MessageStatusRead).Return(true, nil)

	err := f.service.UpdateStatus(42, models.MessageStatusRead)

	assert.NoError(t, err)
	assert.Equal(t, []string{models.TopicMessageStatus}, f.events.topics)

	payload := f.events.events[0].Payload.(models.StatusEventPayload)
	assert.Equal(t, uint(42), payload.MessageID)
	assert.Equal(t, models.MessageStatusRead, payload.Status)
}

func TestUpdateStatusIdempotentRepeat(t *testing.T) {
	f := newMessageFixture()

	f.messageRepo.On("FindByID", uint(42)).
		Return(&models.Message{ID: 42, Status: models.MessageStatusRead}, nil)

	err := f.service.UpdateStatus(42, models.MessageStatusRead)

	assert.NoError(t, err)
	f.messageRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	assert.Empty(t, f.events.events)
}

func TestUpdateStatusBackwardRejected(t *testing.T) {
	f := newMessageFixture()

	f.messageRepo.On("FindByID", uint(42)).
		Return(&models.Message{ID: 42, Status: models.MessageStatusRead}, nil)

	err := f.service.UpdateStatus(42, models.MessageStatusDelivered)

	assert.ErrorIs(t, err, ErrInvalidState)
	f.messageRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestUpdateStatusUnknownState(t *testing.T) {
	f := newMessageFixture()

	err := f.service.UpdateStatus(42, "SEEN")

	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUpdateStatusConcurrentWinnerSilencesEvent(t *testing.T) {
	f := newMessageFixture()

	f.messageRepo.On("FindByID", uint(42)).
		Return(&models.Message{ID: 42, Status: models.MessageStatusSent}, nil)
	// Guarded update matched no row: someone else already advanced it.
	f.messageRepo.On("UpdateStatus", uint(42), models.MessageStatusDelivered).Return(false, nil)

	err := f.service.UpdateStatus(42, models.MessageStatusDelivered)

	assert.NoError(t, err)
	assert.Empty(t, f.events.events)
}

func TestUpdateStatusUnknownMessage(t *testing.T) {
	f := newMessageFixture()

	f.messageRepo.On("FindByID", uint(404)).Return(nil, gorm.ErrRecordNotFound)

	err := f.service.UpdateStatus(404, models.MessageStatusDelivered)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEditReplacesContentAndStamps(t *testing.T) {
	f := newMessageFixture()

	editedAt := time.Now()
	original := &models.Message{ID: 42, ChatroomID: "5_9", Content: "hello"}
	updated := &models.Message{ID: 42, ChatroomID: "5_9", Content: "hello there", EditedAt: &editedAt}

	f.messageRepo.On("FindByID", uint(42)).Return(original, nil).Once()
	f.messageRepo.On("UpdateContent", uint(42), "hello there", mock.AnythingOfType("time.Time")).Return(nil)
	f.messageRepo.On("FindByID", uint(42)).Return(updated, nil).Once()

	view, err := f.service.Edit(42, "hello there")

	assert.NoError(t, err)
	assert.True(t, view.Edited)
	assert.Equal(t, "hello there", view.Content)
	assert.Equal(t, []string{"chat/5_9"}, f.events.topics)
	assert.Equal(t, models.EventMessageEdited, f.events.events[0].Type)
}

func TestEditSoftDeletedRejected(t *testing.T) {
	f := newMessageFixture()

	f.messageRepo.On("FindByID", uint(42)).
		Return(&models.Message{ID: 42, SoftDeleted: true}, nil)

	_, err := f.service.Edit(42, "new content")

	assert.ErrorIs(t, err, ErrInvalidState)
	f.messageRepo.AssertNotCalled(t, "UpdateContent", mock.Anything, mock.Anything, mock.Anything)
}

func TestEditEmptyContentRejected(t *testing.T) {
	f := newMessageFixture()

	_, err := f.service.Edit(42, "")

	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSoftDeleteIdempotent(t *testing.T) {
	f := newMessageFixture()

	f.messageRepo.On("FindByID", uint(42)).
		Return(&models.Message{ID: 42, ChatroomID: "5_9"}, nil).Once()
	f.messageRepo.On("MarkSoftDeleted", uint(42)).Return(nil).Once()
	f.messageRepo.On("FindByID", uint(42)).
		Return(&models.Message{ID: 42, ChatroomID: "5_9", SoftDeleted: true}, nil)

	assert.NoError(t, f.service.SoftDelete(42))
	assert.NoError(t, f.service.SoftDelete(42))

	f.messageRepo.AssertNumberOfCalls(t, "MarkSoftDeleted", 1)
	assert.Equal(t, []string{"chat/5_9"}, f.events.topics)
	assert.Equal(t, models.EventMessageDeleted, f.events.events[0].Type)
}

func TestReplyToSoftDeletedTarget(t *testing.T) {
	f := newMessageFixture()

	replyTo := uint(42)
	target := &models.Message{ID: 42, ChatroomID: "5_9", SoftDeleted: true}

	f.userRepo.On("FindByID", uint(9)).Return(&models.User{ID: 9, Username: "bob"}, nil)
	f.messageRepo.On("FindByID", uint(42)).Return(target, nil)

	stored := &models.Message{
		ID:         43,
		ChatroomID: "5_9",
		SenderID:   9,
		Sender:     models.User{ID: 9, Username: "bob"},
		Content:    "still relevant",
		Kind:       models.MessageKindText,
		Status:     models.MessageStatusSent,
		ReplyToID:  &replyTo,
		ReplyTo:    target,
	}
	f.messageRepo.On("Append", mock.MatchedBy(func(m *models.Message) bool {
		return m.ReplyToID != nil && *m.ReplyToID == 42 && m.ChatroomID == "5_9"
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Message).ID = 43
	}).Return(nil)
	f.messageRepo.On("FindByID", uint(43)).Return(stored, nil)
	f.chatRoomRepo.On("TouchActivity", mock.Anything, mock.Anything).Return(nil)

	view, err := f.service.Reply(9, 42, "still relevant", nil)

	assert.NoError(t, err)
	assert.NotNil(t, view.RepliedTo)
	assert.Equal(t, uint(42), view.RepliedTo.ID)
}

func TestForwardCopiesIntoDestination(t *testing.T) {
	f := newMessageFixture()

	fileID := uint(3)
	source := &models.Message{
		ID:         42,
		ChatroomID: "5_9",
		Content:    "check this out",
		Kind:       models.MessageKindImage,
		FileID:     &fileID,
	}
	f.userRepo.On("FindByID", uint(9)).Return(&models.User{ID: 9}, nil)
	f.messageRepo.On("FindByID", uint(42)).Return(source, nil)
	f.chatRoomRepo.On("FindByID", "group_7").
		Return(&models.ChatRoom{ID: "group_7", Kind: models.ChatRoomGroup}, nil)

	stored := &models.Message{
		ID:         44,
		ChatroomID: "group_7",
		SenderID:   9,
		Content:    "check this out",
		Kind:       models.MessageKindImage,
		Status:     models.MessageStatusSent,
		Forwarded:  true,
	}
	f.messageRepo.On("Append", mock.MatchedBy(func(m *models.Message) bool {
		return m.Forwarded && m.ChatroomID == "group_7" &&
			m.Content == "check this out" && m.FileID != nil && *m.FileID == 3
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Message).ID = 44
	}).Return(nil)
	f.messageRepo.On("FindByID", uint(44)).Return(stored, nil)
	f.chatRoomRepo.On("TouchActivity", mock.Anything, mock.Anything).Return(nil)

	view, err := f.service.Forward(42, "group_7", 9)

	assert.NoError(t, err)
	assert.True(t, view.Forwarded)
	assert.Equal(t, "group_7", view.ChatroomID)
	assert.Equal(t, []string{"chat/group_7"}, f.events.topics)
}

func TestForwardUnknownDestination(t *testing.T) {
	f := newMessageFixture()

	f.userRepo.On("FindByID", uint(9)).Return(&models.User{ID: 9}, nil)
	f.messageRepo.On("FindByID", uint(42)).Return(&models.Message{ID: 42, ChatroomID: "5_9"}, nil)
	f.chatRoomRepo.On("FindByID", "group_404").Return(nil, gorm.ErrRecordNotFound)

	_, err := f.service.Forward(42, "group_404", 9)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListHidesSoftDeletedByDefault(t *testing.T) {
	f := newMessageFixture()

	f.chatRoomRepo.On("FindByID", "5_9").Return(&models.ChatRoom{ID: "5_9"}, nil)
	f.messageRepo.On("ListByChatroom", "5_9", false).
		Return([]models.Message{{ID: 1, ChatroomID: "5_9"}}, nil)

	views, err := f.service.List("5_9", false)

	assert.NoError(t, err)
	assert.Len(t, views, 1)
	f.messageRepo.AssertCalled(t, "ListByChatroom", "5_9", false)
}

func TestGetReturnsSoftDeleted(t *testing.T) {
	f := newMessageFixture()

	f.messageRepo.On("FindByID", uint(42)).
		Return(&models.Message{ID: 42, ChatroomID: "5_9", SoftDeleted: true}, nil)

	view, err := f.service.Get(42)

	assert.NoError(t, err)
	assert.Equal(t, uint(42), view.ID)
}
