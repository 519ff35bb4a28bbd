package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"chat-app-server/models"
	"chat-app-server/repositories/mocks"
)

func newChatRoomFixture() (*ChatRoomService, *mocks.ChatRoomRepository, *mocks.UserRepository, *mocks.GroupRepository) {
	chatRoomRepo := new(mocks.ChatRoomRepository)
	userRepo := new(mocks.UserRepository)
	groupRepo := new(mocks.GroupRepository)
	return NewChatRoomService(chatRoomRepo, userRepo, groupRepo), chatRoomRepo, userRepo, groupRepo
}

func TestResolvePersonalCreatesCanonicalRoom(t *testing.T) {
	service, chatRoomRepo, userRepo, _ := newChatRoomFixture()

	userRepo.On("FindByID", uint(5)).Return(&models.User{ID: 5, Username: "alice"}, nil)
	userRepo.On("FindByID", uint(9)).Return(&models.User{ID: 9, Username: "bob"}, nil)
	chatRoomRepo.On("FindPersonalByParticipants", uint(5), uint(9)).Return(nil, gorm.ErrRecordNotFound)
	chatRoomRepo.On("CreateIfAbsent", mock.MatchedBy(func(room *models.ChatRoom) bool {
		return room.ID == "5_9" && room.Kind == models.ChatRoomPersonal && len(room.Participants) == 2
	})).Return(true, nil)

	room, err := service.ResolvePersonal(5, 9)

	assert.NoError(t, err)
	assert.Equal(t, "5_9", room.ID)
	chatRoomRepo.AssertExpectations(t)
}

func TestResolvePersonalOrderIndependent(t *testing.T) {
	service, chatRoomRepo, userRepo, _ := newChatRoomFixture()

	userRepo.On("FindByID", uint(5)).Return(&models.User{ID: 5}, nil)
	userRepo.On("FindByID", uint(9)).Return(&models.User{ID: 9}, nil)
	chatRoomRepo.On("FindPersonalByParticipants", uint(9), uint(5)).Return(nil, gorm.ErrRecordNotFound)
	chatRoomRepo.On("CreateIfAbsent", mock.Anything).Return(true, nil)

	// Resolving with the arguments swapped still lands on the min_max id.
	room, err := service.ResolvePersonal(9, 5)

	assert.NoError(t, err)
	assert.Equal(t, "5_9", room.ID)
}

func TestResolvePersonalReturnsExistingRoom(t *testing.T) {
	service, chatRoomRepo, userRepo, _ := newChatRoomFixture()

	existing := &models.ChatRoom{ID: "5_9", Kind: models.ChatRoomPersonal}
	userRepo.On("FindByID", mock.Anything).Return(&models.User{ID: 5}, nil)
	chatRoomRepo.On("FindPersonalByParticipants", uint(5), uint(9)).Return(existing, nil)

	room, err := service.ResolvePersonal(5, 9)

	assert.NoError(t, err)
	assert.Same(t, existing, room)
	chatRoomRepo.AssertNotCalled(t, "CreateIfAbsent", mock.Anything)
}

func TestResolvePersonalLostRaceReadsWinner(t *testing.T) {
	service, chatRoomRepo, userRepo, _ := newChatRoomFixture()

	winner := &models.ChatRoom{ID: "5_9", Kind: models.ChatRoomPersonal}
	userRepo.On("FindByID", uint(5)).Return(&models.User{ID: 5}, nil)
	userRepo.On("FindByID", uint(9)).Return(&models.User{ID: 9}, nil)
	chatRoomRepo.On("FindPersonalByParticipants", uint(5), uint(9)).Return(nil, gorm.ErrRecordNotFound)
	chatRoomRepo.On("CreateIfAbsent", mock.Anything).Return(false, nil)
	chatRoomRepo.On("FindByID", "5_9").Return(winner, nil)

	room, err := service.ResolvePersonal(5, 9)

	assert.NoError(t, err)
	assert.Same(t, winner, room)
	chatRoomRepo.AssertExpectations(t)
}

func TestResolvePersonalRejectsSameUser(t *testing.T) {
	service, _, _, _ := newChatRoomFixture()

	_, err := service.ResolvePersonal(5, 5)

	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestResolvePersonalRejectsZeroID(t *testing.T) {
	service, _, _, _ := newChatRoomFixture()

	_, err := service.ResolvePersonal(0, 9)

	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestResolvePersonalUnknownUser(t *testing.T) {
	service, _, userRepo, _ := newChatRoomFixture()

	userRepo.On("FindByID", uint(5)).Return(&models.User{ID: 5}, nil)
	userRepo.On("FindByID", uint(9)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.ResolvePersonal(5, 9)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveGroupCreatesRoomWithMembership(t *testing.T) {
	service, chatRoomRepo, _, groupRepo := newChatRoomFixture()

	group := &models.Group{
		ID:   7,
		Name: "team",
		Members: []models.User{
			{ID: 5}, {ID: 9}, {ID: 12},
		},
	}
	groupRepo.On("FindByID", uint(7)).Return(group, nil)
	chatRoomRepo.On("FindByGroup", uint(7)).Return(nil, gorm.ErrRecordNotFound)
	chatRoomRepo.On("CreateIfAbsent", mock.MatchedBy(func(room *models.ChatRoom) bool {
		return room.ID == "group_7" && room.Kind == models.ChatRoomGroup && len(room.Participants) == 3
	})).Return(true, nil)

	room, err := service.ResolveGroup(7)

	assert.NoError(t, err)
	assert.Equal(t, "group_7", room.ID)
	chatRoomRepo.AssertExpectations(t)
}

func TestResolveGroupUnknownGroup(t *testing.T) {
	service, _, _, groupRepo := newChatRoomFixture()

	groupRepo.On("FindByID", uint(7)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.ResolveGroup(7)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddParticipantRejectsPersonalRoom(t *testing.T) {
	service, chatRoomRepo, _, _ := newChatRoomFixture()

	chatRoomRepo.On("FindByID", "5_9").Return(&models.ChatRoom{ID: "5_9", Kind: models.ChatRoomPersonal}, nil)

	err := service.AddParticipant("5_9", 12)

	assert.ErrorIs(t, err, ErrInvalidArgument)
	chatRoomRepo.AssertNotCalled(t, "AddParticipant", mock.Anything, mock.Anything)
}

func TestAddParticipantGroupRoom(t *testing.T) {
	service, chatRoomRepo, userRepo, _ := newChatRoomFixture()

	user := &models.User{ID: 12}
	chatRoomRepo.On("FindByID", "group_7").Return(&models.ChatRoom{ID: "group_7", Kind: models.ChatRoomGroup}, nil)
	userRepo.On("FindByID", uint(12)).Return(user, nil)
	chatRoomRepo.On("AddParticipant", "group_7", user).Return(nil)

	err := service.AddParticipant("group_7", 12)

	assert.NoError(t, err)
	chatRoomRepo.AssertExpectations(t)
}

func TestRoomsForUserOrdering(t *testing.T) {
	service, chatRoomRepo, userRepo, _ := newChatRoomFixture()

	now := time.Now()
	rooms := []models.ChatRoom{
		{ID: "5_9", LastActivity: now},
		{ID: "group_7", LastActivity: now.Add(-time.Hour)},
	}
	userRepo.On("FindByID", uint(5)).Return(&models.User{ID: 5}, nil)
	chatRoomRepo.On("FindByParticipant", uint(5)).Return(rooms, nil)

	got, err := service.RoomsForUser(5)

	assert.NoError(t, err)
	assert.Equal(t, rooms, got)
}
