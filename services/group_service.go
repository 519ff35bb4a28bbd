package services

import (
	"log"

	"chat-app-server/models"
	"chat-app-server/repositories"
)

// GroupService manages groups and keeps the group's chatroom participant
// list in step with its membership.
type GroupService struct {
	GroupRepo repositories.GroupRepository
	UserRepo  repositories.UserRepository
	ChatRooms *ChatRoomService
}

func NewGroupService(groupRepo repositories.GroupRepository, userRepo repositories.UserRepository, chatRooms *ChatRoomService) *GroupService {
	return &GroupService{GroupRepo: groupRepo, UserRepo: userRepo, ChatRooms: chatRooms}
}

// Create makes a group owned by creatorID, with the creator as its first
// member, and resolves the group's chatroom so it exists up front.
func (s *GroupService) Create(name string, creatorID uint) (*models.Group, error) {
	if name == "" {
		return nil, ErrInvalidArgument
	}
	creator, err := s.UserRepo.FindByID(creatorID)
	if err != nil {
		return nil, asNotFound(err, "user %d", creatorID)
	}

	group := &models.Group{
		Name:        name,
		CreatedByID: creator.ID,
		Members:     []models.User{*creator},
	}
	if err := s.GroupRepo.Create(group); err != nil {
		return nil, err
	}

	if _, err := s.ChatRooms.ResolveGroup(group.ID); err != nil {
		// the room resolves lazily on first message anyway
		log.Printf("[group] resolve chatroom for group %d: %v", group.ID, err)
	}
	return s.GroupRepo.FindByID(group.ID)
}

func (s *GroupService) Get(id uint) (*models.Group, error) {
	group, err := s.GroupRepo.FindByID(id)
	if err != nil {
		return nil, asNotFound(err, "group %d", id)
	}
	return group, nil
}

// AddMember adds the user to the group and to its chatroom, so an existing
// room picks up the new participant without re-resolving.
func (s *GroupService) AddMember(groupID, userID uint) error {
	group, err := s.GroupRepo.FindByID(groupID)
	if err != nil {
		return asNotFound(err, "group %d", groupID)
	}
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return asNotFound(err, "user %d", userID)
	}

	if err := s.GroupRepo.AddMember(group.ID, user); err != nil {
		return err
	}
	if err := s.ChatRooms.AddParticipant(models.GroupChatRoomID(group.ID), user.ID); err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

// RemoveMember drops the user from the group and from its chatroom.
func (s *GroupService) RemoveMember(groupID, userID uint) error {
	group, err := s.GroupRepo.FindByID(groupID)
	if err != nil {
		return asNotFound(err, "group %d", groupID)
	}
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return asNotFound(err, "user %d", userID)
	}

	if err := s.GroupRepo.RemoveMember(group.ID, user); err != nil {
		return err
	}
	if err := s.ChatRooms.RemoveParticipant(models.GroupChatRoomID(group.ID), user.ID); err != nil && !isNotFound(err) {
		return err
	}
	return nil
}
