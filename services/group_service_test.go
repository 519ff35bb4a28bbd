package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"chat-app-server/models"
	"chat-app-server/repositories/mocks"
)

func newGroupFixture() (*GroupService, *mocks.GroupRepository, *mocks.UserRepository, *mocks.ChatRoomRepository) {
	groupRepo := new(mocks.GroupRepository)
	userRepo := new(mocks.UserRepository)
	chatRoomRepo := new(mocks.ChatRoomRepository)
	chatRooms := NewChatRoomService(chatRoomRepo, userRepo, groupRepo)
	return NewGroupService(groupRepo, userRepo, chatRooms), groupRepo, userRepo, chatRoomRepo
}

func TestAddMemberSyncsChatroom(t *testing.T) {
	service, groupRepo, userRepo, chatRoomRepo := newGroupFixture()

	joiner := &models.User{ID: 12}
	groupRepo.On("FindByID", uint(7)).Return(&models.Group{ID: 7, Name: "team"}, nil)
	userRepo.On("FindByID", uint(12)).Return(joiner, nil)
	groupRepo.On("AddMember", uint(7), joiner).Return(nil)
	chatRoomRepo.On("FindByID", "group_7").
		Return(&models.ChatRoom{ID: "group_7", Kind: models.ChatRoomGroup}, nil)
	chatRoomRepo.On("AddParticipant", "group_7", joiner).Return(nil)

	err := service.AddMember(7, 12)

	assert.NoError(t, err)
	groupRepo.AssertExpectations(t)
	chatRoomRepo.AssertExpectations(t)
}

func TestAddMemberBeforeChatroomExists(t *testing.T) {
	service, groupRepo, userRepo, chatRoomRepo := newGroupFixture()

	joiner := &models.User{ID: 12}
	groupRepo.On("FindByID", uint(7)).Return(&models.Group{ID: 7, Name: "team"}, nil)
	userRepo.On("FindByID", uint(12)).Return(joiner, nil)
	groupRepo.On("AddMember", uint(7), joiner).Return(nil)
	// No room yet; it resolves lazily with the full membership later.
	chatRoomRepo.On("FindByID", "group_7").Return(nil, gorm.ErrRecordNotFound)

	err := service.AddMember(7, 12)

	assert.NoError(t, err)
	chatRoomRepo.AssertNotCalled(t, "AddParticipant", mock.Anything, mock.Anything)
}

func TestAddMemberUnknownGroup(t *testing.T) {
	service, groupRepo, _, _ := newGroupFixture()

	groupRepo.On("FindByID", uint(7)).Return(nil, gorm.ErrRecordNotFound)

	err := service.AddMember(7, 12)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateGroupRejectsEmptyName(t *testing.T) {
	service, _, _, _ := newGroupFixture()

	_, err := service.Create("", 5)

	assert.ErrorIs(t, err, ErrInvalidArgument)
}
